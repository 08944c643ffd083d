/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: html_test.go
Description: Tests for the HTML specification extractor.
*/

package extract

import (
	"strings"
	"testing"

	"github.com/kleascm/sayuri-bfir/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specPage = `<html><body>
<h2>Structure</h2>
<table>
  <tr><th>Byte Offset</th><th>Size (bytes)</th><th>Field Name</th><th>Description</th></tr>
  <tr><td>0x00</td><td>8</td><td>Header</td><td>Fixed header pattern</td></tr>
  <tr><td>0x08</td><td>2</td><td>Manufacturer ID</td><td>Big-endian manufacturer code</td></tr>
  <tr><td>0x12</td><td>1</td><td></td><td>Reserved</td></tr>
</table>
<p>Unrelated navigation table:</p>
<table>
  <tr><th>Page</th><th>Link</th></tr>
  <tr><td>Index</td><td>index.html</td></tr>
</table>
</body></html>`

// TestExtractSpecTable tests field candidate extraction from a spec table
// with loosely named columns.
func TestExtractSpecTable(t *testing.T) {
	extractor := NewHTMLExtractor()

	candidates, err := extractor.Extract(strings.NewReader(specPage))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, interfaces.FieldCandidate{
		Name:        "Header",
		Offset:      "0x00",
		Size:        "8",
		Description: "Fixed header pattern",
	}, candidates[0])
	assert.Equal(t, "Manufacturer ID", candidates[1].Name)
}

// TestExtractSkipsTablesWithoutNameColumn tests that tables lacking a
// recognizable name column contribute nothing.
func TestExtractSkipsTablesWithoutNameColumn(t *testing.T) {
	page := `<table>
		<tr><th>Offset</th><th>Value</th></tr>
		<tr><td>0</td><td>1</td></tr>
	</table>`

	candidates, err := NewHTMLExtractor().Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

// TestExtractHeaderlessTable tests classification when the header row uses
// td cells instead of th.
func TestExtractHeaderlessTable(t *testing.T) {
	page := `<table>
		<tr><td>Field</td><td>Length</td></tr>
		<tr><td>Checksum</td><td>1</td></tr>
	</table>`

	candidates, err := NewHTMLExtractor().Extract(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Checksum", candidates[1].Name)
	assert.Equal(t, "1", candidates[1].Size)
}

// TestClassifyHeaderPrecedence tests that a size column mentioning bytes is
// still classified as a size, not an offset.
func TestClassifyHeaderPrecedence(t *testing.T) {
	assert.Equal(t, colSize, classifyHeader("Size (bytes)"))
	assert.Equal(t, colSize, classifyHeader("Length"))
	assert.Equal(t, colOffset, classifyHeader("Byte Offset"))
	assert.Equal(t, colName, classifyHeader("Field Name"))
	assert.Equal(t, colDescription, classifyHeader("Meaning"))
	assert.Equal(t, colUnknown, classifyHeader("Notes"))
}
