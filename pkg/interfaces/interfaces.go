/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces for the Sayuri BFIR toolkit. Defines the
contracts between document producers, the pattern converter, and the
pipeline orchestrator so packages stay decoupled.
*/

package interfaces

import (
	"context"
	"io"
)

// Converter turns one BFIR document into pattern-language source text.
// Implementations are built per document; Convert is all-or-nothing and
// RequiredImports is valid after a successful Convert.
type Converter interface {
	Convert() (string, error)
	RequiredImports() []string
}

// Extractor pulls field candidates out of an external specification source
// (an HTML page, a PDF dump) and serializes them for downstream stages.
type Extractor interface {
	Extract(r io.Reader) ([]FieldCandidate, error)
}

// FieldCandidate is one field row recovered from a specification document.
// Offset and size are kept as raw strings; interpreting them is the mapping
// stage's job.
type FieldCandidate struct {
	Name        string `json:"field"`
	Offset      string `json:"offset,omitempty"`
	Size        string `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}

// Stage is one step of the conversion pipeline. Stages run sequentially and
// a failing stage aborts the run.
type Stage interface {
	Name() string
	Run(ctx context.Context) error
}
