/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: typemap_test.go
Description: Tests for the byte-size to pattern type mapping.
*/

package hexpat_test

import (
	"testing"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/kleascm/sayuri-bfir/pkg/hexpat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScalarTypeForWidths tests the exact scalar widths and the array
// fallback for everything else.
func TestScalarTypeForWidths(t *testing.T) {
	cases := []struct {
		size  int
		name  string
		count int
	}{
		{1, "u8", 1},
		{2, "u16", 1},
		{4, "u32", 1},
		{8, "u64", 1},
		{3, "u8", 3},
		{5, "u8", 5},
		{40, "u8", 40},
		{128, "u8", 128},
	}

	for _, tc := range cases {
		typ, err := hexpat.ScalarTypeFor("field", tc.size)
		require.NoError(t, err, "size %d", tc.size)
		assert.Equal(t, tc.name, typ.Name, "size %d", tc.size)
		assert.Equal(t, tc.count, typ.Count, "size %d", tc.size)
	}
}

// TestScalarTypeForInvalidSizes tests that zero and negative sizes are
// rejected with the field name attached.
func TestScalarTypeForInvalidSizes(t *testing.T) {
	for _, size := range []int{0, -1, -8} {
		_, err := hexpat.ScalarTypeFor("Checksum", size)
		require.Error(t, err, "size %d", size)

		var unsupported *bfir.UnsupportedSizeError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "Checksum", unsupported.Name)
		assert.Equal(t, size, unsupported.Size)
	}
}

// TestDeclarationRendering tests the member declaration forms
func TestDeclarationRendering(t *testing.T) {
	scalar, err := hexpat.ScalarTypeFor("Magic", 4)
	require.NoError(t, err)
	assert.Equal(t, "u32 Magic", scalar.Declaration("Magic"))

	array, err := hexpat.ScalarTypeFor("Payload", 40)
	require.NoError(t, err)
	assert.Equal(t, "u8 Payload[40]", array.Declaration("Payload"))
}
