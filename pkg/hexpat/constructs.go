/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: constructs.go
Description: Control-construct generation for the pattern language: function
declarations, namespaced function calls, and for loops. Function calls are
the single path through which library imports are discovered, so every call
registers its namespace with the converter's import tracker.
*/

package hexpat

import (
	"fmt"
	"strings"
)

// Param is one typed parameter of a generated function
type Param struct {
	Type string
	Name string
}

// FunctionSpec describes a function declaration to generate. Body lines are
// emitted verbatim; the caller is responsible for producing valid statements.
type FunctionSpec struct {
	Name   string
	Params []Param
	Body   []string
}

// CallSpec describes a namespaced library call to generate. Namespace is the
// dot-separated library path, e.g. "std.math".
type CallSpec struct {
	Namespace string
	Function  string
	Args      []string
}

// LoopSpec describes a for loop to generate. Body lines are emitted verbatim.
type LoopSpec struct {
	InitDecl  string // loop variable declaration, e.g. "u8 i"
	InitValue string
	Condition string
	Increment string
	Body      []string
}

const indent = "    "

// GenerateFunctionDeclaration emits a complete function block: the signature
// built from the typed parameter list, the body indented one level, and the
// block terminator.
func (c *Converter) GenerateFunctionDeclaration(spec FunctionSpec) []string {
	params := make([]string, 0, len(spec.Params))
	for _, p := range spec.Params {
		params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
	}

	lines := []string{fmt.Sprintf("fn %s(%s) {", spec.Name, strings.Join(params, ", "))}
	for _, stmt := range spec.Body {
		lines = append(lines, indent+stmt)
	}
	lines = append(lines, "};")
	return lines
}

// GenerateFunctionCall emits a single call expression and registers the
// call's namespace with the import tracker. This is the only way imports are
// discovered, so callers must never build namespaced calls by hand.
func (c *Converter) GenerateFunctionCall(spec CallSpec) string {
	c.tracker.Register(spec.Namespace)
	path := strings.ReplaceAll(spec.Namespace, ".", "::")
	return fmt.Sprintf("%s::%s(%s)", path, spec.Function, strings.Join(spec.Args, ", "))
}

// GenerateForLoop emits a loop header and its body indented one level
func (c *Converter) GenerateForLoop(spec LoopSpec) []string {
	lines := []string{fmt.Sprintf("for (%s = %s, %s, %s) {",
		spec.InitDecl, spec.InitValue, spec.Condition, spec.Increment)}
	for _, stmt := range spec.Body {
		lines = append(lines, indent+stmt)
	}
	lines = append(lines, "}")
	return lines
}
