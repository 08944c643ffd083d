/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: converter.go
Description: Document assembler for BFIR to pattern-language conversion.
Walks the field tree through the emitter, then concatenates in fixed order:
endianness pragma, format header comment, deduplicated imports, composite
type declarations in dependency order, the root struct, and the root
instantiation. Assembly is all-or-nothing; a converter is built fresh per
document and never shares state with another conversion.
*/

package hexpat

import (
	"fmt"
	"strings"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
)

// DefaultUnrollThreshold is the largest array-like element count that is
// emitted as explicit per-element declarations instead of an array member.
// A readability policy, not a correctness one; both forms lay out the same
// bytes.
const DefaultUnrollThreshold = 4

// Converter turns one BFIR document into pattern-language source text. It
// owns its import tracker, so constructing a converter per document keeps
// conversions independent and safe to run concurrently.
type Converter struct {
	doc        *bfir.Document
	tracker    *ImportTracker
	rootOffset int
	unroll     int
}

// Option configures a Converter
type Option func(*Converter)

// WithRootOffset places the root struct instantiation at the given byte
// offset instead of 0x00.
func WithRootOffset(offset int) Option {
	return func(c *Converter) { c.rootOffset = offset }
}

// WithUnrollThreshold overrides the array unroll threshold
func WithUnrollThreshold(n int) Option {
	return func(c *Converter) { c.unroll = n }
}

// NewConverter creates a converter for one document
func NewConverter(doc *bfir.Document, opts ...Option) *Converter {
	c := &Converter{
		doc:     doc,
		tracker: NewImportTracker(),
		unroll:  DefaultUnrollThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequiredImports returns the library namespaces the generated document
// depends on, in first-seen order. Populated by Convert and by the construct
// generators; callers can read it without re-parsing the output text.
func (c *Converter) RequiredImports() []string {
	return c.tracker.Required()
}

// Convert assembles the complete pattern document. The input tree is only
// read, never written; converting the same document twice yields
// byte-identical text.
func (c *Converter) Convert() (string, error) {
	if err := c.doc.Validate(); err != nil {
		return "", err
	}

	e := newEmitter(c.unroll)

	rootName := typeName(c.doc.Format.Name)
	rootBody := make([]string, 0, len(c.doc.Fields))
	for _, f := range c.doc.Fields {
		lines, err := e.emitField(f, "")
		if err != nil {
			return "", err
		}
		for _, line := range lines {
			rootBody = append(rootBody, indent+line)
		}
	}

	rootBlock := append([]string{fmt.Sprintf("struct %s {", rootName)}, rootBody...)
	rootBlock = append(rootBlock, "};")
	if err := e.registerDecl(rootName, rootBlock, ""); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(c.pragmaLine())
	b.WriteString("\n")

	for _, line := range c.headerComment() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if imports := c.tracker.Flush(); len(imports) > 0 {
		b.WriteString("\n")
		for _, line := range imports {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	for _, decl := range e.decls {
		b.WriteString("\n")
		for _, line := range decl.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s @ 0x%02X;\n", rootName, instanceName(rootName), c.rootOffset))
	return b.String(), nil
}

// pragmaLine resolves the document endianness into the pragma statement.
// An unset endianness defaults to little, matching the upstream producer.
func (c *Converter) pragmaLine() string {
	endian := c.doc.Format.Endianness
	if endian == "" {
		endian = bfir.EndianLittle
	}
	return fmt.Sprintf("#pragma endian %s", endian)
}

// headerComment renders the format name, version and description as comment
// lines under the pragma.
func (c *Converter) headerComment() []string {
	title := c.doc.Format.Name
	if c.doc.Format.Version != "" {
		title += " " + c.doc.Format.Version
	}
	lines := []string{"// " + title}
	if c.doc.Format.Description != "" {
		lines = append(lines, "// "+c.doc.Format.Description)
	}
	return lines
}

func instanceName(rootName string) string {
	return strings.ToLower(rootName)
}
