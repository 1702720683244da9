package semantic

import "fmt"

// Resolver grounds declarative concept references into concrete identifier
// sets. It is stateless and deliberately minimal:
//
//   - a single-concept reference resolves to its one identifier
//   - an enumeration resolves to the identifiers of its members
//   - a group resolves to its anchor identifiers only
//
// The resolver is not backed by a vocabulary database, so group anchors are
// not expanded into full hierarchies here.
type Resolver struct{}

// Resolve maps a reference to the set of identifiers it denotes.
func (Resolver) Resolve(ref Reference) (IDSet, error) {
	switch v := ref.(type) {
	case ConceptRef:
		if v.ID == nil {
			return nil, &MissingFieldError{Reference: v.Name, Field: "identifier"}
		}
		return NewIDSet(*v.ID), nil

	case EnumRef:
		out := make(IDSet, len(v.Members))
		for _, m := range v.Members {
			if m.ID != nil {
				out[*m.ID] = struct{}{}
			}
		}
		return out, nil

	case GroupRef:
		out := make(IDSet, len(v.Anchors))
		for _, a := range v.Anchors {
			if a.ID != nil {
				out[*a.ID] = struct{}{}
			}
		}
		return out, nil

	default:
		return nil, &UnsupportedVariantError{Variant: fmt.Sprintf("%T", ref)}
	}
}
