/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: hcl.go
Description: HCL front-end for BFIR documents. Lets format descriptions be
authored by hand as nested field blocks instead of the machine-produced JSON
wire form. The HCL-specific schema is decoded first and then translated into
the agnostic document model, keeping the rest of the system unaware of the
input syntax.
*/

package bfir

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclFormat mirrors the `format {}` block
type hclFormat struct {
	Name        string `hcl:"name"`
	Version     string `hcl:"version,optional"`
	Description string `hcl:"description,optional"`
	Endianness  string `hcl:"endianness,optional"`
}

// hclBits mirrors a `bits "name" {}` block inside a bit_fields field
type hclBits struct {
	Name        string `hcl:"name,label"`
	Width       int    `hcl:"width"`
	Description string `hcl:"description,optional"`
}

// hclValue mirrors a `value "name" {}` block inside an enum field. The value
// attribute is kept as an expression so constants can be written either as
// plain numbers or as hex strings like "0x1F".
type hclValue struct {
	Name        string         `hcl:"name,label"`
	Value       hcl.Expression `hcl:"value"`
	Description string         `hcl:"description,optional"`
}

// hclField mirrors a `field "name" {}` block; nesting is expressed by
// repeating the block inside struct fields.
type hclField struct {
	Name        string      `hcl:"name,label"`
	Type        string      `hcl:"type"`
	Size        int         `hcl:"size,optional"`
	Description string      `hcl:"description,optional"`
	Offset      *int        `hcl:"offset,optional"`
	Fields      []*hclField `hcl:"field,block"`
	Bits        []*hclBits  `hcl:"bits,block"`
	Values      []*hclValue `hcl:"value,block"`
}

// hclDocument mirrors a whole BFIR document file
type hclDocument struct {
	Format *hclFormat  `hcl:"format,block"`
	Fields []*hclField `hcl:"field,block"`
}

// ParseHCL decodes an HCL-authored BFIR document and validates its structure.
// The filename is used only for diagnostics.
func ParseHCL(filename string, src []byte) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var wire hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &wire); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}
	if wire.Format == nil {
		return nil, fmt.Errorf("%s has no format block", filename)
	}

	doc := &Document{
		Format: FormatDescriptor{
			Name:        wire.Format.Name,
			Version:     wire.Format.Version,
			Description: wire.Format.Description,
			Endianness:  Endianness(wire.Format.Endianness),
		},
	}
	for _, f := range wire.Fields {
		node, err := fieldFromHCL(f)
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

// fieldFromHCL translates one HCL field block into the agnostic model
func fieldFromHCL(f *hclField) (*FieldNode, error) {
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
			childNode, err := fieldFromHCL(child)
			if err != nil {
				return nil, err
			}
			node.Fields = append(node.Fields, childNode)
		}

	case "bit_fields":
		node.Kind = KindBitFields
		for _, b := range f.Bits {
			node.Bits = append(node.Bits, BitFieldEntry{
				Name:        b.Name,
				Bits:        b.Width,
				Description: b.Description,
			})
		}
		node.SizeBytes = f.Size
		if node.SizeBytes == 0 {
			node.SizeBytes = impliedContainerSize(node.Bits)
		}

	case "enum":
		node.Kind = KindEnum
		node.SizeBytes = f.Size
		for _, v := range f.Values {
			val, err := enumValueFromExpr(f.Name, v.Name, v.Value)
			if err != nil {
				return nil, err
			}
			node.Values = append(node.Values, EnumValue{
				Name:        v.Name,
				Value:       val,
				Description: v.Description,
			})
		}

	default:
		return nil, fmt.Errorf("field %q has unknown type %q", f.Name, f.Type)
	}

	return node, nil
}

// enumValueFromExpr evaluates an enum constant expression. Numbers are taken
// as-is; strings are parsed with base auto-detection so "0x80" works.
func enumValueFromExpr(field, name string, expr hcl.Expression) (int64, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("enum %q value %q: %s", field, name, diags.Error())
	}

	switch v.Type() {
	case cty.Number:
		var n int64
		if err := gocty.FromCtyValue(v, &n); err != nil {
			return 0, fmt.Errorf("enum %q value %q is not an integer: %w", field, name, err)
		}
		return n, nil
	case cty.String:
		n, err := strconv.ParseInt(v.AsString(), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("enum %q value %q is not a number: %w", field, name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("enum %q value %q must be a number or numeric string", field, name)
	}
}
