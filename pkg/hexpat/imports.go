/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: imports.go
Description: Library import tracker for pattern generation. Accumulates the
namespaces required by emitted function calls in first-seen order, so the
assembled document always lists each import exactly once and repeated runs
over identical input produce identical text.
*/

package hexpat

import "fmt"

// ImportTracker is a conversion-scoped accumulator of required library
// namespaces. It preserves first-seen order rather than sorting, and every
// converter owns its own tracker so state never leaks across conversions.
type ImportTracker struct {
	seen  map[string]bool
	order []string
}

// NewImportTracker creates an empty tracker
func NewImportTracker() *ImportTracker {
	return &ImportTracker{seen: make(map[string]bool)}
}

// Register records a namespace as required. Registering the same namespace
// again is a no-op.
func (t *ImportTracker) Register(namespace string) {
	if namespace == "" || t.seen[namespace] {
		return
	}
	t.seen[namespace] = true
	t.order = append(t.order, namespace)
}

// Required returns the registered namespaces in first-seen order
func (t *ImportTracker) Required() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Flush returns the deduplicated import statements, one per registered
// namespace, in first-seen order. Flushing does not clear the tracker, so a
// repeated conversion of the same document stays byte-identical.
func (t *ImportTracker) Flush() []string {
	lines := make([]string, 0, len(t.order))
	for _, ns := range t.order {
		lines = append(lines, fmt.Sprintf("import %s;", ns))
	}
	return lines
}
