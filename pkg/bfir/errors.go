/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Typed error values for BFIR document validation and pattern
generation. Every error identifies the offending field by name and parent
path so malformed documents fail loudly instead of producing a syntactically
valid but semantically wrong layout description.
*/

package bfir

import "fmt"

// MalformedFieldError reports a field that is missing required attributes or
// violates a structural invariant (empty child list, duplicate sibling name,
// enum value out of range).
type MalformedFieldError struct {
	Name   string // offending field name
	Path   string // dotted path of the parent ("" for root)
	Reason string
}

func (e *MalformedFieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed field %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("malformed field %q (in %s): %s", e.Name, e.Path, e.Reason)
}

// BitFieldOverflowError reports a bit-field container whose declared entries
// exceed its byte-width capacity.
type BitFieldOverflowError struct {
	Name     string
	Path     string
	Declared int // sum of entry widths in bits
	Capacity int // container capacity in bits
}

func (e *BitFieldOverflowError) Error() string {
	return fmt.Sprintf("bit field %q (in %s) declares %d bits but the container holds %d",
		e.Name, pathOrRoot(e.Path), e.Declared, e.Capacity)
}

// UnsupportedSizeError reports a field declaring a non-positive byte size
type UnsupportedSizeError struct {
	Name string
	Size int
}

func (e *UnsupportedSizeError) Error() string {
	return fmt.Sprintf("field %q declares unsupported size %d bytes", e.Name, e.Size)
}

// DuplicateDeclarationError reports two composite types that would be emitted
// under the same name with different shapes, a naming collision across
// unrelated branches of the field tree.
type DuplicateDeclarationError struct {
	TypeName string
	Path     string
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("type %q (in %s) conflicts with an earlier declaration of a different shape",
		e.TypeName, pathOrRoot(e.Path))
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
