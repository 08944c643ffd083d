/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: layout.go
Description: Byte layout computation for BFIR documents. Walks the field tree
in declaration order and assigns each field its absolute byte offset and size,
mirroring the sequential member layout of the generated pattern. Used by the
inspect command and by layout-invariant tests.
*/

package bfir

// FieldLayout is the resolved placement of one field in the binary image
type FieldLayout struct {
	Path   string    // dotted path from the root, e.g. "Header.Magic"
	Kind   FieldKind // variant of the field at this path
	Offset int       // absolute byte offset from the start of the format
	Size   int       // total size in bytes, including nested fields
}

// ComputeLayout resolves the absolute byte offset and size of every field in
// the document. Fields are laid out sequentially in declaration order with no
// padding between siblings; a struct's size is the sum of its children.
func ComputeLayout(doc *Document) ([]FieldLayout, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var out []FieldLayout
	if _, err := layoutSiblings(doc.Fields, "", 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// layoutSiblings lays out one field list starting at base, returning the
// total size consumed.
func layoutSiblings(fields []*FieldNode, path string, base int, out *[]FieldLayout) (int, error) {
	offset := base
	for _, f := range fields {
		fieldPath := f.Name
		if path != "" {
			fieldPath = path + "." + f.Name
		}

		size, err := layoutField(f, fieldPath, offset, out)
		if err != nil {
			return 0, err
		}
		offset += size
	}
	return offset - base, nil
}

func layoutField(f *FieldNode, path string, offset int, out *[]FieldLayout) (int, error) {
	// reserve the slot so parents appear before their children
	idx := len(*out)
	*out = append(*out, FieldLayout{Path: path, Kind: f.Kind, Offset: offset})

	var size int
	switch f.Kind {
	case KindSimpleValue, KindBitFields, KindEnum:
		size = f.SizeBytes
	case KindStruct:
		nested, err := layoutSiblings(f.Fields, path, offset, out)
		if err != nil {
			return 0, err
		}
		size = nested
	default:
		return 0, &MalformedFieldError{Name: f.Name, Path: path, Reason: "unknown field kind"}
	}

	(*out)[idx].Size = size
	return size, nil
}
