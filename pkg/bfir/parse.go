/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parse.go
Description: JSON decoding and encoding for BFIR documents. The wire shape
matches the upstream pipeline producer: a "format" descriptor plus a "fields"
tree where each field carries a "type" discriminator. Unknown discriminators
are a hard error so malformed input can never silently degrade into a
simple value.
*/

package bfir

import (
	"encoding/json"
	"fmt"
)

// jsonField is the wire representation of one field tree node
type jsonField struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Size        int             `json:"size,omitempty"`
	Description string          `json:"description,omitempty"`
	Offset      *int            `json:"offset,omitempty"`
	Fields      []*jsonField    `json:"fields,omitempty"`
	BitFields   []BitFieldEntry `json:"bit_fields,omitempty"`
	EnumValues  []EnumValue     `json:"enum_values,omitempty"`
}

// jsonDocument is the wire representation of a whole BFIR document
type jsonDocument struct {
	Format FormatDescriptor `json:"format"`
	Fields []*jsonField     `json:"fields"`
}

// ParseJSON decodes a serialized BFIR document and validates its structure.
// The returned document is safe to hand to any number of converters.
func ParseJSON(data []byte) (*Document, error) {
	var wire jsonDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode BFIR document: %w", err)
	}

	doc := &Document{Format: wire.Format}
	for _, f := range wire.Fields {
		node, err := fieldFromWire(f)
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

// fieldFromWire maps one wire field onto the closed FieldNode variant set
func fieldFromWire(f *jsonField) (*FieldNode, error) {
	node := &FieldNode{
		Name:        f.Name,
		Description: f.Description,
		Offset:      f.Offset,
	}

	switch f.Type {
	case "simple_value":
		node.Kind = KindSimpleValue
		node.SizeBytes = f.Size

	case "struct":
		node.Kind = KindStruct
		for _, child := range f.Fields {
			childNode, err := fieldFromWire(child)
			if err != nil {
				return nil, err
			}
			node.Fields = append(node.Fields, childNode)
		}

	case "bit_fields":
		node.Kind = KindBitFields
		node.Bits = f.BitFields
		node.SizeBytes = f.Size
		if node.SizeBytes == 0 {
			node.SizeBytes = impliedContainerSize(f.BitFields)
		}

	case "enum":
		node.Kind = KindEnum
		node.SizeBytes = f.Size
		node.Values = f.EnumValues

	default:
		return nil, fmt.Errorf("field %q has unknown type %q", f.Name, f.Type)
	}

	return node, nil
}

// impliedContainerSize derives a bit-field container size when the producer
// omitted one: the smallest whole number of bytes covering the declared bits,
// never less than a single byte.
func impliedContainerSize(bits []BitFieldEntry) int {
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

// EncodeJSON serializes a document back into the upstream wire shape with
// stable field ordering, suitable for handing to other pipeline stages.
func EncodeJSON(doc *Document) ([]byte, error) {
	wire := jsonDocument{Format: doc.Format}
	for _, f := range doc.Fields {
		wf, err := fieldToWire(f)
		if err != nil {
			return nil, err
		}
		wire.Fields = append(wire.Fields, wf)
	}
	return json.MarshalIndent(&wire, "", "  ")
}

func fieldToWire(node *FieldNode) (*jsonField, error) {
	f := &jsonField{
		Name:        node.Name,
		Type:        node.Kind.String(),
		Description: node.Description,
		Offset:      node.Offset,
	}

	switch node.Kind {
	case KindSimpleValue:
		f.Size = node.SizeBytes
	case KindStruct:
		for _, child := range node.Fields {
			wf, err := fieldToWire(child)
			if err != nil {
				return nil, err
			}
			f.Fields = append(f.Fields, wf)
		}
	case KindBitFields:
		f.Size = node.SizeBytes
		f.BitFields = node.Bits
	case KindEnum:
		f.Size = node.SizeBytes
		f.EnumValues = node.Values
	default:
		return nil, fmt.Errorf("field %q has unknown kind %v", node.Name, node.Kind)
	}

	return f, nil
}
