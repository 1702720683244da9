// Package valueset compiles grouped declarative concept references into a
// read-only nested lookup namespace: value-set name -> semantic-unit name ->
// label -> identifier. It reuses the semantic package's reference variants
// and mirrors the template pipeline at a smaller granularity: declarative
// definitions in, compiled queryable structure out.
package valueset

import (
	"fmt"
	"sort"

	"github.com/omopkit/semantics/semantic"
)

// NotFoundError reports a failed namespace lookup.
type NotFoundError struct {
	Kind string // "valueset", "unit", "label"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// Enum is a compiled enumeration: label -> identifier. Members without a
// label or identifier are dropped at compile time.
type Enum struct {
	name    string
	byLabel map[string]int
}

// Name returns the enumeration's declared name.
func (e Enum) Name() string { return e.name }

// Lookup resolves a member label to its identifier.
func (e Enum) Lookup(label string) (int, error) {
	id, ok := e.byLabel[label]
	if !ok {
		return 0, &NotFoundError{Kind: "label", Name: label}
	}
	return id, nil
}

// Labels returns the member labels in sorted order.
func (e Enum) Labels() []string { return sortedKeys(e.byLabel) }

// Group is a compiled group: anchor label -> anchor identifier.
type Group struct {
	name    string
	byLabel map[string]int
}

// Name returns the group's declared name.
func (g Group) Name() string { return g.name }

// Lookup resolves an anchor label to its identifier.
func (g Group) Lookup(label string) (int, error) {
	id, ok := g.byLabel[label]
	if !ok {
		return 0, &NotFoundError{Kind: "label", Name: label}
	}
	return id, nil
}

// Labels returns the anchor labels in sorted order.
func (g Group) Labels() []string { return sortedKeys(g.byLabel) }

// Unit is a compiled semantic unit: a namespace of enumerations, groups,
// single concepts, and scalar identifiers. Groups exposing exactly one
// anchor are collapsed into Scalars under the group name instead of
// appearing as one-element groups.
type Unit struct {
	name     string
	enums    map[string]Enum
	groups   map[string]Group
	concepts map[string]semantic.ConceptRef
	scalars  map[string]int
}

// Name returns the unit's declared name.
func (u Unit) Name() string { return u.name }

// Enum returns a compiled enumeration by name.
func (u Unit) Enum(name string) (Enum, error) {
	e, ok := u.enums[name]
	if !ok {
		return Enum{}, &NotFoundError{Kind: "enum", Name: name}
	}
	return e, nil
}

// Group returns a compiled group by name. Singleton groups are not listed
// here; they collapse to Scalar entries.
func (u Unit) Group(name string) (Group, error) {
	g, ok := u.groups[name]
	if !ok {
		return Group{}, &NotFoundError{Kind: "group", Name: name}
	}
	return g, nil
}

// Concept returns a single-concept reference by name.
func (u Unit) Concept(name string) (semantic.ConceptRef, error) {
	c, ok := u.concepts[name]
	if !ok {
		return semantic.ConceptRef{}, &NotFoundError{Kind: "concept", Name: name}
	}
	return c, nil
}

// Scalar returns a collapsed singleton-group identifier by group name.
func (u Unit) Scalar(name string) (int, error) {
	id, ok := u.scalars[name]
	if !ok {
		return 0, &NotFoundError{Kind: "label", Name: name}
	}
	return id, nil
}

// Lookup resolves a bare label anywhere in the unit: scalars first, then
// enumeration member labels, then group anchor labels.
func (u Unit) Lookup(label string) (int, error) {
	if id, ok := u.scalars[label]; ok {
		return id, nil
	}
	for _, name := range sortedKeys(u.enums) {
		if id, ok := u.enums[name].byLabel[label]; ok {
			return id, nil
		}
	}
	for _, name := range sortedKeys(u.groups) {
		if id, ok := u.groups[name].byLabel[label]; ok {
			return id, nil
		}
	}
	return 0, &NotFoundError{Kind: "label", Name: label}
}

// Enums returns the enumeration names in sorted order.
func (u Unit) Enums() []string { return sortedKeys(u.enums) }

// Groups returns the multi-anchor group names in sorted order.
func (u Unit) Groups() []string { return sortedKeys(u.groups) }

// Concepts returns the single-concept names in sorted order.
func (u Unit) Concepts() []string { return sortedKeys(u.concepts) }

// Scalars returns the collapsed singleton-group names in sorted order.
func (u Unit) Scalars() []string { return sortedKeys(u.scalars) }

// Set is a compiled value set: a namespace of semantic units.
type Set struct {
	name  string
	units map[string]Unit
}

// Name returns the value set's declared name.
func (s Set) Name() string { return s.name }

// Unit returns a semantic unit by name.
func (s Set) Unit(name string) (Unit, error) {
	u, ok := s.units[name]
	if !ok {
		return Unit{}, &NotFoundError{Kind: "unit", Name: name}
	}
	return u, nil
}

// Units returns the unit names in sorted order.
func (s Set) Units() []string { return sortedKeys(s.units) }

// Namespace is the compiled root: all value sets by name.
type Namespace struct {
	sets map[string]Set
}

// Set returns a value set by name.
func (n *Namespace) Set(name string) (Set, error) {
	s, ok := n.sets[name]
	if !ok {
		return Set{}, &NotFoundError{Kind: "valueset", Name: name}
	}
	return s, nil
}

// Sets returns the value-set names in sorted order.
func (n *Namespace) Sets() []string { return sortedKeys(n.sets) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
