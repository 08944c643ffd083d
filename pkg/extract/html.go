/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: html.go
Description: HTML specification extractor. Pulls field candidate rows out of
the tables of an HTML format specification so the pipeline can feed them to
the field mapping stage. Column headers are matched loosely since published
specifications rarely agree on naming.
*/

package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kleascm/sayuri-bfir/pkg/interfaces"
)

// HTMLExtractor extracts field candidates from the tables of an HTML
// specification page.
type HTMLExtractor struct{}

// NewHTMLExtractor creates a new HTML extractor
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// columnRole classifies a table header cell
type columnRole int

const (
	colUnknown columnRole = iota
	colName
	colOffset
	colSize
	colDescription
)

// Extract parses the HTML document and returns one candidate per table row
// that carries at least a field name. Tables without a recognizable name
// column are skipped.
func (e *HTMLExtractor) Extract(r io.Reader) ([]interfaces.FieldCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}

	var candidates []interfaces.FieldCandidate
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		roles := headerRoles(table)
		if roles == nil {
			return
		}

		table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return // header row
			}

			var c interfaces.FieldCandidate
			cells.Each(func(colIdx int, cell *goquery.Selection) {
				if colIdx >= len(roles) {
					return
				}
				text := strings.TrimSpace(cell.Text())
				switch roles[colIdx] {
				case colName:
					c.Name = text
				case colOffset:
					c.Offset = text
				case colSize:
					c.Size = text
				case colDescription:
					c.Description = text
				}
			})

			if c.Name != "" {
				candidates = append(candidates, c)
			}
		})
	})

	return candidates, nil
}

// headerRoles classifies the header cells of a table, or returns nil when no
// name column can be found.
func headerRoles(table *goquery.Selection) []columnRole {
	header := table.Find("tr").First().Find("th")
	if header.Length() == 0 {
		header = table.Find("tr").First().Find("td")
	}

	var roles []columnRole
	hasName := false
	header.Each(func(_ int, cell *goquery.Selection) {
		role := classifyHeader(cell.Text())
		if role == colName {
			hasName = true
		}
		roles = append(roles, role)
	})

	if !hasName {
		return nil
	}
	return roles
}

func classifyHeader(text string) columnRole {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(t, "field") || strings.Contains(t, "name"):
		return colName
	case strings.Contains(t, "size") || strings.Contains(t, "length") || strings.Contains(t, "width"):
		return colSize
	case strings.Contains(t, "offset") || strings.Contains(t, "address") || strings.Contains(t, "byte"):
		return colOffset
	case strings.Contains(t, "desc") || strings.Contains(t, "meaning") || strings.Contains(t, "comment"):
		return colDescription
	default:
		return colUnknown
	}
}
