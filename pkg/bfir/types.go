/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the Binary Format Intermediate Representation (BFIR).
Defines the format descriptor, the recursive field tree, and the closed set of
field kinds used throughout document parsing, layout computation, and pattern
generation.
*/

package bfir

import "fmt"

// Endianness describes the byte order of a binary format
type Endianness string

const (
	EndianBig    Endianness = "big"
	EndianLittle Endianness = "little"
)

// FormatDescriptor identifies the binary format a BFIR document describes.
// It is owned by the top of the document and drives the endianness pragma
// of the generated pattern.
type FormatDescriptor struct {
	Name        string     `json:"name"`
	Version     string     `json:"version,omitempty"`
	Description string     `json:"description,omitempty"`
	Endianness  Endianness `json:"endianness,omitempty"`
}

// FieldKind is the closed set of field variants a BFIR document may contain.
// Every consumer switches exhaustively over these values; an unrecognized
// kind is always an error, never a fallback.
type FieldKind int

const (
	KindSimpleValue FieldKind = iota // flat scalar occupying SizeBytes contiguous bytes
	KindStruct                       // named composite of nested fields
	KindBitFields                    // byte-sized container with individually named bits
	KindEnum                         // named constants over a fixed-width storage type
)

// String returns the wire name of the field kind
func (k FieldKind) String() string {
	switch k {
	case KindSimpleValue:
		return "simple_value"
	case KindStruct:
		return "struct"
	case KindBitFields:
		return "bit_fields"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// FieldNode is the recursive core entity of a BFIR document. The Kind tag
// selects which of the variant members are meaningful:
//   - KindSimpleValue: SizeBytes
//   - KindStruct:      Fields (insertion order is byte layout order)
//   - KindBitFields:   SizeBytes (container width), Bits
//   - KindEnum:        SizeBytes (storage width), Values
//
// Offset is optional metadata carried from the upstream producer; it never
// alters the positional layout.
type FieldNode struct {
	Kind        FieldKind
	Name        string
	Description string
	SizeBytes   int
	Offset      *int
	Fields      []*FieldNode
	Bits        []BitFieldEntry
	Values      []EnumValue
}

// BitFieldEntry names a run of bits inside a bit-field container
type BitFieldEntry struct {
	Name        string `json:"name"`
	Bits        int    `json:"bits"`
	Description string `json:"description,omitempty"`
}

// EnumValue names a constant of an enum field. Duplicate values are
// permitted (aliases); duplicate names are not.
type EnumValue struct {
	Name        string `json:"name"`
	Value       int64  `json:"value"`
	Description string `json:"description,omitempty"`
}

// Document is one complete BFIR document: a format descriptor plus the
// ordered field tree. A document is read-only for the duration of a
// conversion; emission never mutates it.
type Document struct {
	Format FormatDescriptor
	Fields []*FieldNode
}
