/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: typemap.go
Description: Byte-size to pattern-language type mapping. Exact scalar widths
map to the unsigned scalar types; every other positive size becomes a fixed
length byte array of exactly that many elements so downstream byte-offset
arithmetic is never disturbed by rounding.
*/

package hexpat

import (
	"fmt"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
)

// ScalarType is the resolved pattern-language type for a field of a given
// byte size. Count > 1 means a fixed-length array of Count elements of Name.
type ScalarType struct {
	Name  string
	Count int
}

// Declaration renders the type as a member declaration for the given field
// identifier, without the trailing semicolon.
func (t ScalarType) Declaration(ident string) string {
	if t.Count > 1 {
		return fmt.Sprintf("%s %s[%d]", t.Name, ident, t.Count)
	}
	return fmt.Sprintf("%s %s", t.Name, ident)
}

// ScalarTypeFor maps a byte size onto a pattern-language type: 1, 2, 4 and 8
// bytes map to u8, u16, u32 and u64; any other positive size maps to a u8
// array of exactly sizeBytes elements. Non-positive sizes are rejected with
// an UnsupportedSizeError carrying the field name.
func ScalarTypeFor(fieldName string, sizeBytes int) (ScalarType, error) {
	if sizeBytes <= 0 {
		return ScalarType{}, &bfir.UnsupportedSizeError{Name: fieldName, Size: sizeBytes}
	}

	switch sizeBytes {
	case 1:
		return ScalarType{Name: "u8", Count: 1}, nil
	case 2:
		return ScalarType{Name: "u16", Count: 1}, nil
	case 4:
		return ScalarType{Name: "u32", Count: 1}, nil
	case 8:
		return ScalarType{Name: "u64", Count: 1}, nil
	default:
		return ScalarType{Name: "u8", Count: sizeBytes}, nil
	}
}
