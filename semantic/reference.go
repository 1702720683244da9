// Package semantic resolves declarative concept references into concrete
// identifier sets and compiles templates against them. It is the layer
// between declarative vocabulary fragments and the executable form consumed
// by pipelines and query builders.
package semantic

import "sort"

// Reference is the tagged union over the three concept-reference variants:
// a single concept, an enumeration of concepts, or a group. The interface is
// sealed so resolver dispatch stays exhaustive.
type Reference interface {
	ReferenceName() string
	isReference()
}

// Member is one enumerated concept or group anchor. The identifier is
// optional; members without one are skipped during resolution.
type Member struct {
	ID    *int
	Label string
}

// ConceptRef references exactly one concept.
type ConceptRef struct {
	Name  string
	ID    *int
	Label string
	Notes string
}

func (r ConceptRef) ReferenceName() string { return r.Name }
func (ConceptRef) isReference()            {}

// EnumRef references a closed enumeration of concepts. Any member is valid.
type EnumRef struct {
	Name    string
	Members []Member
	Notes   string
}

func (r EnumRef) ReferenceName() string { return r.Name }
func (EnumRef) isReference()            {}

// GroupRef references a concept group by its anchors. Anchors are the
// group's direct parent concepts, not its full membership: expanding them
// against a full vocabulary hierarchy is left to downstream consumers that
// own one.
type GroupRef struct {
	Name    string
	Anchors []Member
	Notes   string
}

func (r GroupRef) ReferenceName() string { return r.Name }
func (GroupRef) isReference()            {}

// ID returns a pointer to v, for building references literally.
func ID(v int) *int { return &v }

// IDSet is a set of concept identifiers.
type IDSet map[int]struct{}

// NewIDSet builds a set from identifiers.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s IDSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the set's identifiers in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether two sets hold the same identifiers.
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}
