/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: emitter_test.go
Description: Tests for the field emitter through the converter surface.
Covers the unroll policy, composite declaration deduplication and collision
detection, malformed field rejection, and identifier sanitization.
*/

package hexpat_test

import (
	"strings"
	"testing"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/kleascm/sayuri-bfir/pkg/hexpat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(fields ...*bfir.FieldNode) *bfir.Document {
	return &bfir.Document{
		Format: bfir.FormatDescriptor{Name: "Test", Endianness: bfir.EndianLittle},
		Fields: fields,
	}
}

// TestEmitUnrollSmallArray tests that array-like sizes at or below the
// threshold are emitted as explicit per-element declarations.
func TestEmitUnrollSmallArray(t *testing.T) {
	doc := docWith(&bfir.FieldNode{
		Kind: bfir.KindSimpleValue, Name: "Data", SizeBytes: 3, Description: "three bytes",
	})

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)

	assert.Contains(t, text, `u8 Data_0 [[comment("three bytes")]];`)
	assert.Contains(t, text, "u8 Data_1;")
	assert.Contains(t, text, "u8 Data_2;")
	assert.NotContains(t, text, "Data[3]")
}

// TestEmitArrayAboveThreshold tests the array form for large sizes
func TestEmitArrayAboveThreshold(t *testing.T) {
	doc := docWith(&bfir.FieldNode{Kind: bfir.KindSimpleValue, Name: "Data", SizeBytes: 16})

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)
	assert.Contains(t, text, "u8 Data[16];")
}

// TestEmitUnrollThresholdOption tests that the threshold is configurable and
// both forms describe the same bytes.
func TestEmitUnrollThresholdOption(t *testing.T) {
	doc := docWith(&bfir.FieldNode{Kind: bfir.KindSimpleValue, Name: "Data", SizeBytes: 3})

	text, err := hexpat.NewConverter(doc, hexpat.WithUnrollThreshold(2)).Convert()
	require.NoError(t, err)
	assert.Contains(t, text, "u8 Data[3];")
	assert.NotContains(t, text, "Data_0")
}

// TestEmitScalarSizes tests that exact scalar widths never unroll
func TestEmitScalarSizes(t *testing.T) {
	doc := docWith(
		&bfir.FieldNode{Kind: bfir.KindSimpleValue, Name: "A", SizeBytes: 1},
		&bfir.FieldNode{Kind: bfir.KindSimpleValue, Name: "B", SizeBytes: 2},
		&bfir.FieldNode{Kind: bfir.KindSimpleValue, Name: "C", SizeBytes: 4},
		&bfir.FieldNode{Kind: bfir.KindSimpleValue, Name: "D", SizeBytes: 8},
	)

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)
	assert.Contains(t, text, "u8 A;")
	assert.Contains(t, text, "u16 B;")
	assert.Contains(t, text, "u32 C;")
	assert.Contains(t, text, "u64 D;")
}

// TestEmitDuplicateDeclarationSameShape tests that an identical composite
// reached from two branches is declared exactly once.
func TestEmitDuplicateDeclarationSameShape(t *testing.T) {
	config := func() *bfir.FieldNode {
		return &bfir.FieldNode{
			Kind: bfir.KindStruct,
			Name: "Config",
			Fields: []*bfir.FieldNode{
				{Kind: bfir.KindSimpleValue, Name: "Value", SizeBytes: 1},
			},
		}
	}
	doc := docWith(
		&bfir.FieldNode{Kind: bfir.KindStruct, Name: "First", Fields: []*bfir.FieldNode{config()}},
		&bfir.FieldNode{Kind: bfir.KindStruct, Name: "Second", Fields: []*bfir.FieldNode{config()}},
	)

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(text, "struct Config {"))
}

// TestEmitDuplicateDeclarationConflict tests that the same type name with a
// different shape aborts the conversion.
func TestEmitDuplicateDeclarationConflict(t *testing.T) {
	doc := docWith(
		&bfir.FieldNode{Kind: bfir.KindStruct, Name: "First", Fields: []*bfir.FieldNode{
			{Kind: bfir.KindStruct, Name: "Config", Fields: []*bfir.FieldNode{
				{Kind: bfir.KindSimpleValue, Name: "Value", SizeBytes: 1},
			}},
		}},
		&bfir.FieldNode{Kind: bfir.KindStruct, Name: "Second", Fields: []*bfir.FieldNode{
			{Kind: bfir.KindStruct, Name: "Config", Fields: []*bfir.FieldNode{
				{Kind: bfir.KindSimpleValue, Name: "Value", SizeBytes: 2},
			}},
		}},
	)

	_, err := hexpat.NewConverter(doc).Convert()
	require.Error(t, err)

	var dup *bfir.DuplicateDeclarationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Config", dup.TypeName)
}

// TestEmitDuplicateDeclarationDescriptionConflict tests that two same-name
// composites with the same byte layout but differing descriptions collide:
// only one declaration could survive, so the mismatch must surface.
func TestEmitDuplicateDeclarationDescriptionConflict(t *testing.T) {
	config := func(desc string) *bfir.FieldNode {
		return &bfir.FieldNode{
			Kind: bfir.KindStruct,
			Name: "Config",
			Fields: []*bfir.FieldNode{
				{Kind: bfir.KindSimpleValue, Name: "Value", SizeBytes: 1, Description: desc},
			},
		}
	}
	doc := docWith(
		&bfir.FieldNode{Kind: bfir.KindStruct, Name: "First", Fields: []*bfir.FieldNode{config("primary value")}},
		&bfir.FieldNode{Kind: bfir.KindStruct, Name: "Second", Fields: []*bfir.FieldNode{config("backup value")}},
	)

	_, err := hexpat.NewConverter(doc).Convert()
	require.Error(t, err)

	var dup *bfir.DuplicateDeclarationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Config", dup.TypeName)
}

// TestEmitBitFieldOverflow tests that entries exceeding the container width
// fail with a BitFieldOverflowError.
func TestEmitBitFieldOverflow(t *testing.T) {
	doc := docWith(&bfir.FieldNode{
		Kind:      bfir.KindBitFields,
		Name:      "Flags",
		SizeBytes: 1,
		Bits: []bfir.BitFieldEntry{
			{Name: "a", Bits: 6},
			{Name: "b", Bits: 6},
		},
	})

	_, err := hexpat.NewConverter(doc).Convert()
	require.Error(t, err)

	var overflow *bfir.BitFieldOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, 12, overflow.Declared)
	assert.Equal(t, 8, overflow.Capacity)
}

// TestEmitBitFieldExactFit tests that a full container gains no padding
func TestEmitBitFieldExactFit(t *testing.T) {
	doc := docWith(&bfir.FieldNode{
		Kind:      bfir.KindBitFields,
		Name:      "Flags",
		SizeBytes: 1,
		Bits: []bfir.BitFieldEntry{
			{Name: "low", Bits: 4},
			{Name: "high", Bits: 4},
		},
	})

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)
	assert.NotContains(t, text, "padding")
}

// TestEmitEnum tests enum declaration shape and value formatting
func TestEmitEnum(t *testing.T) {
	doc := docWith(&bfir.FieldNode{
		Kind:      bfir.KindEnum,
		Name:      "Color Type",
		SizeBytes: 1,
		Values: []bfir.EnumValue{
			{Name: "Mono", Value: 0, Description: "Monochrome display"},
			{Name: "RGB", Value: 1},
			{Name: "Alias", Value: 1}, // aliases are allowed
		},
	})

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)

	assert.Contains(t, text, "enum ColorType : u8 {")
	assert.Contains(t, text, "Mono = 0x00, // Monochrome display")
	assert.Contains(t, text, "RGB = 0x01,")
	assert.Contains(t, text, "Alias = 0x01,")
	assert.Contains(t, text, "ColorType Color_Type")
}

// TestEmitMalformedEmptyStruct tests that an empty struct is rejected with
// the offending field identified.
func TestEmitMalformedEmptyStruct(t *testing.T) {
	doc := docWith(&bfir.FieldNode{Kind: bfir.KindStruct, Name: "Empty"})

	_, err := hexpat.NewConverter(doc).Convert()
	require.Error(t, err)

	var malformed *bfir.MalformedFieldError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "Empty", malformed.Name)
}

// TestEmitSanitizedIdentifiers tests that names with spaces and punctuation
// become valid identifiers deterministically.
func TestEmitSanitizedIdentifiers(t *testing.T) {
	doc := docWith(&bfir.FieldNode{
		Kind: bfir.KindStruct,
		Name: "Video Input Definition",
		Fields: []*bfir.FieldNode{
			{Kind: bfir.KindSimpleValue, Name: "Bit Depth (per channel)", SizeBytes: 1},
		},
	})

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)

	assert.Contains(t, text, "struct VideoInputDefinition {")
	assert.Contains(t, text, "u8 Bit_Depth_per_channel;")
	assert.Contains(t, text, "VideoInputDefinition Video_Input_Definition;")
}

// TestEmitDigitLeadingTypeName tests that a composite named with a leading
// digit gains the underscore guard on its type name, not just its member
// identifier.
func TestEmitDigitLeadingTypeName(t *testing.T) {
	doc := docWith(&bfir.FieldNode{
		Kind: bfir.KindStruct,
		Name: "3d header",
		Fields: []*bfir.FieldNode{
			{Kind: bfir.KindSimpleValue, Name: "Depth", SizeBytes: 2},
		},
	})

	text, err := hexpat.NewConverter(doc).Convert()
	require.NoError(t, err)

	assert.Contains(t, text, "struct _3dHeader {")
	assert.Contains(t, text, "_3dHeader _3d_header;")
	assert.NotContains(t, text, "struct 3dHeader")
}
