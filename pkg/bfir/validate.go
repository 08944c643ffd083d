/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: validate.go
Description: Structural validation for BFIR documents. Walks the field tree
checking the invariants the pattern generator depends on: non-empty unique
sibling names, positive sizes, bit-field capacity, and enum values that fit
their declared storage width. Validation never mutates the document.
*/

package bfir

import "fmt"

// Validate checks every structural invariant of the document. It returns the
// first violation found as one of the typed errors in errors.go, or nil when
// the document is well formed.
func (d *Document) Validate() error {
	if d.Format.Name == "" {
		return fmt.Errorf("document has no format name")
	}
	switch d.Format.Endianness {
	case EndianBig, EndianLittle, "":
		// empty defaults to little at generation time
	default:
		return fmt.Errorf("unknown endianness %q", d.Format.Endianness)
	}
	if len(d.Fields) == 0 {
		return &MalformedFieldError{Name: d.Format.Name, Reason: "document has no fields"}
	}
	return validateSiblings(d.Fields, "")
}

// validateSiblings checks one field list: unique names plus per-node checks
func validateSiblings(fields []*FieldNode, path string) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return &MalformedFieldError{Name: "(unnamed)", Path: path, Reason: "field has no name"}
		}
		if seen[f.Name] {
			return &MalformedFieldError{Name: f.Name, Path: path, Reason: "duplicate sibling field name"}
		}
		seen[f.Name] = true

		if err := validateField(f, path); err != nil {
			return err
		}
	}
	return nil
}

func validateField(f *FieldNode, path string) error {
	childPath := f.Name
	if path != "" {
		childPath = path + "." + f.Name
	}

	switch f.Kind {
	case KindSimpleValue:
		if f.SizeBytes <= 0 {
			return &UnsupportedSizeError{Name: f.Name, Size: f.SizeBytes}
		}

	case KindStruct:
		if len(f.Fields) == 0 {
			return &MalformedFieldError{Name: f.Name, Path: path, Reason: "struct has no fields"}
		}
		return validateSiblings(f.Fields, childPath)

	case KindBitFields:
		if len(f.Bits) == 0 {
			return &MalformedFieldError{Name: f.Name, Path: path, Reason: "bit field has no entries"}
		}
		if f.SizeBytes <= 0 {
			return &UnsupportedSizeError{Name: f.Name, Size: f.SizeBytes}
		}
		names := make(map[string]bool, len(f.Bits))
		total := 0
		for _, b := range f.Bits {
			if b.Name == "" {
				return &MalformedFieldError{Name: f.Name, Path: path, Reason: "bit entry has no name"}
			}
			if names[b.Name] {
				return &MalformedFieldError{Name: f.Name, Path: path,
					Reason: fmt.Sprintf("duplicate bit entry name %q", b.Name)}
			}
			names[b.Name] = true
			if b.Bits <= 0 {
				return &MalformedFieldError{Name: f.Name, Path: path,
					Reason: fmt.Sprintf("bit entry %q has non-positive width", b.Name)}
			}
			total += b.Bits
		}
		if capacity := f.SizeBytes * 8; total > capacity {
			return &BitFieldOverflowError{Name: f.Name, Path: path, Declared: total, Capacity: capacity}
		}

	case KindEnum:
		if f.SizeBytes <= 0 {
			return &UnsupportedSizeError{Name: f.Name, Size: f.SizeBytes}
		}
		if len(f.Values) == 0 {
			return &MalformedFieldError{Name: f.Name, Path: path, Reason: "enum has no values"}
		}
		names := make(map[string]bool, len(f.Values))
		for _, v := range f.Values {
			if v.Name == "" {
				return &MalformedFieldError{Name: f.Name, Path: path, Reason: "enum value has no name"}
			}
			if names[v.Name] {
				return &MalformedFieldError{Name: f.Name, Path: path,
					Reason: fmt.Sprintf("duplicate enum value name %q", v.Name)}
			}
			names[v.Name] = true
			if !valueFits(v.Value, f.SizeBytes) {
				return &MalformedFieldError{Name: f.Name, Path: path,
					Reason: fmt.Sprintf("enum value %q (%d) does not fit in %d bytes", v.Name, v.Value, f.SizeBytes)}
			}
		}

	default:
		return &MalformedFieldError{Name: f.Name, Path: path,
			Reason: fmt.Sprintf("unknown field kind %v", f.Kind)}
	}

	return nil
}

// valueFits reports whether v is representable in an unsigned storage of
// sizeBytes bytes. Enum constants are modeled on the unsigned scalar types
// of the pattern language, so negative values never fit.
func valueFits(v int64, sizeBytes int) bool {
	if v < 0 {
		return false
	}
	if sizeBytes >= 8 {
		return true
	}
	return v < int64(1)<<uint(sizeBytes*8)
}
