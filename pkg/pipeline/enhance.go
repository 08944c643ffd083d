/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: enhance.go
Description: Builds a BFIR document from enhanced field definitions, the
JSON the upstream discovery and mapping stages produce. Each definition's
binary structure decides the field variant; in strict mode an unknown
structure type is an error instead of degrading to a simple value.
*/

package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
)

// BinaryStructure is the per-field structure block of an enhanced field
// definition.
type BinaryStructure struct {
	Type      string               `json:"type"`
	SizeBytes int                  `json:"size_bytes,omitempty"`
	BitFields []bfir.BitFieldEntry `json:"bit_fields,omitempty"`
	Values    []bfir.EnumValue     `json:"values,omitempty"`
	Fields    []StructMember       `json:"fields,omitempty"`
}

// StructMember is one flat member of a struct-typed binary structure
type StructMember struct {
	Name        string `json:"name"`
	SizeBytes   int    `json:"size_bytes"`
	Description string `json:"description,omitempty"`
}

// EnhancedField is one enhanced field definition from the mapping stage.
// Some producers emit "field", others "name"; both are accepted.
type EnhancedField struct {
	Field           string          `json:"field,omitempty"`
	Name            string          `json:"name,omitempty"`
	Offset          *int            `json:"offset,omitempty"`
	Description     string          `json:"description,omitempty"`
	BinaryStructure BinaryStructure `json:"binary_structure"`
}

// fieldName returns the definition's name regardless of which key carried it
func (f *EnhancedField) fieldName() string {
	if f.Field != "" {
		return f.Field
	}
	return f.Name
}

// ParseEnhancedFields decodes an enhanced field definition file
func ParseEnhancedFields(data []byte) ([]EnhancedField, error) {
	var fields []EnhancedField
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode enhanced field definitions: %w", err)
	}
	return fields, nil
}

// BuildDocument converts enhanced field definitions into a validated BFIR
// document. In strict mode an unrecognized binary structure type aborts the
// build; otherwise it falls back to a simple value of the declared size,
// matching the lenient behavior of the upstream producer.
func BuildDocument(format bfir.FormatDescriptor, fields []EnhancedField, strict bool) (*bfir.Document, error) {
	doc := &bfir.Document{Format: format}

	for i := range fields {
		f := &fields[i]
		name := f.fieldName()
		if name == "" {
			return nil, fmt.Errorf("enhanced field %d has no name", i)
		}

		node, err := nodeFromStructure(f, name, strict)
		if err != nil {
			return nil, err
		}
		doc.Fields = append(doc.Fields, node)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func nodeFromStructure(f *EnhancedField, name string, strict bool) (*bfir.FieldNode, error) {
	node := &bfir.FieldNode{
		Name:        name,
		Description: f.Description,
		Offset:      f.Offset,
	}
	bs := &f.BinaryStructure

	switch bs.Type {
	case "bitfield", "bit_fields":
		node.Kind = bfir.KindBitFields
		node.Bits = bs.BitFields
		node.SizeBytes = bs.SizeBytes
		if node.SizeBytes == 0 {
			node.SizeBytes = impliedSize(bs.BitFields)
		}

	case "enum":
		node.Kind = bfir.KindEnum
		node.SizeBytes = defaultSize(bs.SizeBytes)
		node.Values = bs.Values

	case "struct":
		node.Kind = bfir.KindStruct
		for _, m := range bs.Fields {
			node.Fields = append(node.Fields, &bfir.FieldNode{
				Kind:        bfir.KindSimpleValue,
				Name:        m.Name,
				SizeBytes:   defaultSize(m.SizeBytes),
				Description: m.Description,
			})
		}

	case "simple_value", "":
		node.Kind = bfir.KindSimpleValue
		node.SizeBytes = defaultSize(bs.SizeBytes)

	default:
		if strict {
			return nil, fmt.Errorf("field %q has unknown binary structure type %q", name, bs.Type)
		}
		node.Kind = bfir.KindSimpleValue
		node.SizeBytes = defaultSize(bs.SizeBytes)
	}

	return node, nil
}

func defaultSize(size int) int {
	if size <= 0 {
		return 1
	}
	return size
}

func impliedSize(bits []bfir.BitFieldEntry) int {
	total := 0
	for _, b := range bits {
		total += b.Bits
	}
	size := (total + 7) / 8
	if size < 1 {
		size = 1
	}
	return size
}
