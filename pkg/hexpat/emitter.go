/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: emitter.go
Description: Recursive field emitter for the pattern language. Dispatches on
the closed field-kind set, producing member declaration lines for the parent
body and collecting composite type declaration blocks in first-reference
order. Composite names are deduplicated by shape hash so a naming collision
across unrelated branches fails instead of emitting two conflicting types.
*/

package hexpat

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/kleascm/sayuri-bfir/pkg/bfir"
)

// declBlock is one emitted composite type declaration
type declBlock struct {
	name  string
	lines []string
}

// emitter holds the per-conversion emission state: the composite declaration
// list in first-reference order, the shape fingerprint of each declared name,
// and the unroll threshold for array-like simple values.
type emitter struct {
	decls  []declBlock
	shapes map[string]uint64
	unroll int
}

func newEmitter(unrollThreshold int) *emitter {
	return &emitter{
		shapes: make(map[string]uint64),
		unroll: unrollThreshold,
	}
}

// emitField produces the member declaration lines for one field at the
// parent's position. Composite variants register their type declaration as a
// side effect, children first, which yields dependency order for free.
func (e *emitter) emitField(f *bfir.FieldNode, path string) ([]string, error) {
	switch f.Kind {
	case bfir.KindSimpleValue:
		return e.emitSimple(f)
	case bfir.KindStruct:
		return e.emitStruct(f, path)
	case bfir.KindBitFields:
		return e.emitBitFields(f, path)
	case bfir.KindEnum:
		return e.emitEnum(f, path)
	default:
		return nil, &bfir.MalformedFieldError{Name: f.Name, Path: path,
			Reason: fmt.Sprintf("unknown field kind %v", f.Kind)}
	}
}

// emitSimple emits a flat scalar member. Array-like sizes at or below the
// unroll threshold become explicit per-element declarations; larger ones
// become a single array-typed member. Both forms occupy identical bytes.
func (e *emitter) emitSimple(f *bfir.FieldNode) ([]string, error) {
	typ, err := ScalarTypeFor(f.Name, f.SizeBytes)
	if err != nil {
		return nil, err
	}

	ident := sanitizeIdent(f.Name)
	if typ.Count > 1 && typ.Count <= e.unroll {
		lines := make([]string, 0, typ.Count)
		for i := 0; i < typ.Count; i++ {
			decl := fmt.Sprintf("%s %s_%d", typ.Name, ident, i)
			if i == 0 {
				decl = annotate(decl, f.Description)
			} else {
				decl += ";"
			}
			lines = append(lines, decl)
		}
		return lines, nil
	}

	return []string{annotate(typ.Declaration(ident), f.Description)}, nil
}

// emitStruct emits the composite declaration for a nested struct, then a
// one-line member declaration of that type at the parent's position.
func (e *emitter) emitStruct(f *bfir.FieldNode, path string) ([]string, error) {
	if len(f.Fields) == 0 {
		return nil, &bfir.MalformedFieldError{Name: f.Name, Path: path, Reason: "struct has no fields"}
	}

	childPath := joinPath(path, f.Name)
	body := make([]string, 0, len(f.Fields))
	names := make(map[string]bool, len(f.Fields))
	for _, child := range f.Fields {
		if names[child.Name] {
			return nil, &bfir.MalformedFieldError{Name: child.Name, Path: childPath,
				Reason: "duplicate sibling field name"}
		}
		names[child.Name] = true

		lines, err := e.emitField(child, childPath)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			body = append(body, indent+line)
		}
	}

	name := typeName(f.Name)
	block := append([]string{fmt.Sprintf("struct %s {", name)}, body...)
	block = append(block, "};")
	if err := e.registerDecl(name, block, path); err != nil {
		return nil, err
	}

	return []string{annotate(fmt.Sprintf("%s %s", name, sanitizeIdent(f.Name)), f.Description)}, nil
}

// emitBitFields emits a bitfield container declaration. Entries appear in
// declaration order with explicit widths; when they fall short of the
// container's byte width a padding entry fills the remainder, so the widths
// always sum to exactly SizeBytes*8.
func (e *emitter) emitBitFields(f *bfir.FieldNode, path string) ([]string, error) {
	if len(f.Bits) == 0 {
		return nil, &bfir.MalformedFieldError{Name: f.Name, Path: path, Reason: "bit field has no entries"}
	}
	if f.SizeBytes <= 0 {
		return nil, &bfir.UnsupportedSizeError{Name: f.Name, Size: f.SizeBytes}
	}

	capacity := f.SizeBytes * 8
	total := 0
	body := make([]string, 0, len(f.Bits)+1)
	for _, b := range f.Bits {
		total += b.Bits
		body = append(body, indent+annotate(fmt.Sprintf("%s : %d", sanitizeIdent(b.Name), b.Bits), b.Description))
	}
	if total > capacity {
		return nil, &bfir.BitFieldOverflowError{Name: f.Name, Path: path, Declared: total, Capacity: capacity}
	}
	if total < capacity {
		body = append(body, indent+fmt.Sprintf("padding : %d;", capacity-total))
	}

	name := typeName(f.Name)
	block := append([]string{fmt.Sprintf("bitfield %s {", name)}, body...)
	block = append(block, "};")
	if err := e.registerDecl(name, block, path); err != nil {
		return nil, err
	}

	return []string{annotate(fmt.Sprintf("%s %s", name, sanitizeIdent(f.Name)), f.Description)}, nil
}

// emitEnum emits an enum declaration keyed by the scalar type of its storage
// width, then a member declaration typed to that enum.
func (e *emitter) emitEnum(f *bfir.FieldNode, path string) ([]string, error) {
	if len(f.Values) == 0 {
		return nil, &bfir.MalformedFieldError{Name: f.Name, Path: path, Reason: "enum has no values"}
	}
	typ, err := ScalarTypeFor(f.Name, f.SizeBytes)
	if err != nil {
		return nil, err
	}
	if typ.Count > 1 {
		return nil, &bfir.MalformedFieldError{Name: f.Name, Path: path,
			Reason: fmt.Sprintf("enum storage must be a scalar width, got %d bytes", f.SizeBytes)}
	}

	name := typeName(f.Name)
	body := make([]string, 0, len(f.Values))
	names := make(map[string]bool, len(f.Values))
	width := f.SizeBytes * 2
	for _, v := range f.Values {
		if names[v.Name] {
			return nil, &bfir.MalformedFieldError{Name: f.Name, Path: path,
				Reason: fmt.Sprintf("duplicate enum value name %q", v.Name)}
		}
		names[v.Name] = true
		entry := fmt.Sprintf("%s = 0x%0*X,", sanitizeIdent(v.Name), width, v.Value)
		if v.Description != "" {
			entry += " // " + escapeComment(v.Description)
		}
		body = append(body, indent+entry)
	}

	block := append([]string{fmt.Sprintf("enum %s : %s {", name, typ.Name)}, body...)
	block = append(block, "};")
	if err := e.registerDecl(name, block, path); err != nil {
		return nil, err
	}

	return []string{annotate(fmt.Sprintf("%s %s", name, sanitizeIdent(f.Name)), f.Description)}, nil
}

// registerDecl records a composite declaration in first-reference order. A
// name already declared with the same shape is emitted only once; the same
// name with a different shape is a collision and aborts the conversion.
func (e *emitter) registerDecl(name string, block []string, path string) error {
	shape := xxhash.Sum64String(strings.Join(block, "\n"))
	if prev, ok := e.shapes[name]; ok {
		if prev != shape {
			return &bfir.DuplicateDeclarationError{TypeName: name, Path: path}
		}
		return nil
	}
	e.shapes[name] = shape
	e.decls = append(e.decls, declBlock{name: name, lines: block})
	return nil
}

// annotate closes a member declaration, attaching the description as a
// trailing comment attribute when present.
func annotate(decl, description string) string {
	if description == "" {
		return decl + ";"
	}
	return fmt.Sprintf("%s [[comment(\"%s\")]];", decl, escapeComment(description))
}

func escapeComment(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// sanitizeIdent turns an arbitrary field name into a valid pattern-language
// identifier, deterministically: runs of invalid characters collapse into a
// single underscore, and a leading digit gains an underscore prefix.
func sanitizeIdent(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		out = "field"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// typeName derives a composite type name from a field name: the sanitized
// identifier with each underscore-separated word capitalized. Joining the
// words can put a digit back in front, so the leading-digit guard is applied
// again to the result.
func typeName(name string) string {
	parts := strings.Split(sanitizeIdent(name), "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Field"
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}
