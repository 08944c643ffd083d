/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: hcl_test.go
Description: Tests for the HCL document front-end.
*/

package bfir_test

import (
	"testing"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHCL = `
format {
  name        = "EDID"
  version     = "1.4"
  description = "Extended Display Identification Data"
  endianness  = "little"
}

field "Header" {
  type = "struct"

  field "Magic" {
    type        = "simple_value"
    size        = 8
    description = "Fixed header pattern"
  }

  field "Manufacturer ID" {
    type = "simple_value"
    size = 2
  }
}

field "Video Input" {
  type = "bit_fields"
  size = 1

  bits "digital" {
    width       = 1
    description = "Digital input"
  }

  bits "bit_depth" {
    width = 3
  }
}

field "Display Type" {
  type = "enum"
  size = 1

  value "Monochrome" {
    value = 0
  }

  value "RGB" {
    value       = "0x01"
    description = "RGB 4:4:4"
  }
}
`

// TestParseHCLDocument tests decoding a hand-authored HCL document into the
// same model the JSON path produces.
func TestParseHCLDocument(t *testing.T) {
	doc, err := bfir.ParseHCL("edid.hcl", []byte(sampleHCL))
	require.NoError(t, err)

	assert.Equal(t, "EDID", doc.Format.Name)
	assert.Equal(t, bfir.EndianLittle, doc.Format.Endianness)
	require.Len(t, doc.Fields, 3)

	header := doc.Fields[0]
	assert.Equal(t, bfir.KindStruct, header.Kind)
	require.Len(t, header.Fields, 2)
	assert.Equal(t, "Magic", header.Fields[0].Name)
	assert.Equal(t, 8, header.Fields[0].SizeBytes)

	bits := doc.Fields[1]
	assert.Equal(t, bfir.KindBitFields, bits.Kind)
	require.Len(t, bits.Bits, 2)
	assert.Equal(t, bfir.BitFieldEntry{Name: "digital", Bits: 1, Description: "Digital input"}, bits.Bits[0])

	enum := doc.Fields[2]
	assert.Equal(t, bfir.KindEnum, enum.Kind)
	require.Len(t, enum.Values, 2)
	assert.Equal(t, int64(0), enum.Values[0].Value)
	assert.Equal(t, int64(1), enum.Values[1].Value)
	assert.Equal(t, "RGB 4:4:4", enum.Values[1].Description)
}

// TestParseHCLMatchesJSON tests that the two front-ends converge on the
// same document for equivalent input.
func TestParseHCLMatchesJSON(t *testing.T) {
	fromHCL, err := bfir.ParseHCL("edid.hcl", []byte(sampleHCL))
	require.NoError(t, err)

	fromJSON, err := bfir.ParseJSON([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromHCL)
}

// TestParseHCLImpliedBitSize tests container size derivation for bit fields
// authored without an explicit size.
func TestParseHCLImpliedBitSize(t *testing.T) {
	src := `
format {
  name       = "X"
  endianness = "little"
}

field "Flags" {
  type = "bit_fields"

  bits "a" { width = 5 }
  bits "b" { width = 5 }
}
`
	doc, err := bfir.ParseHCL("flags.hcl", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Fields[0].SizeBytes)
}

// TestParseHCLErrors tests the hard failure modes of the front-end
func TestParseHCLErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"syntax error",
			`format { name = `,
			"failed to parse",
		},
		{
			"missing format block",
			`field "A" {
			   type = "simple_value"
			   size = 1
			 }`,
			"no format block",
		},
		{
			"unknown field type",
			`format {
			   name       = "X"
			   endianness = "little"
			 }
			 field "A" {
			   type = "blob"
			   size = 1
			 }`,
			"unknown type",
		},
		{
			"non-numeric enum value",
			`format {
			   name       = "X"
			   endianness = "little"
			 }
			 field "E" {
			   type = "enum"
			   size = 1
			   value "V" { value = "not a number" }
			 }`,
			"not a number",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := bfir.ParseHCL("bad.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
