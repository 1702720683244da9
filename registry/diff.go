package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Diff describes the structural difference between two registry snapshots.
// Concepts are compared by identifier, groups by lowercase name. Changed
// means present in both but value-unequal. The diff is purely descriptive.
type Diff struct {
	AddedConcepts   []int
	RemovedConcepts []int
	ChangedConcepts []int
	AddedGroups     []string
	RemovedGroups   []string
	ChangedGroups   []string
}

// Empty reports whether the diff records no differences at all.
func (d Diff) Empty() bool {
	return len(d.AddedConcepts) == 0 && len(d.RemovedConcepts) == 0 &&
		len(d.ChangedConcepts) == 0 && len(d.AddedGroups) == 0 &&
		len(d.RemovedGroups) == 0 && len(d.ChangedGroups) == 0
}

func (d Diff) String() string {
	return fmt.Sprintf("RegistryDiff(+c=%d -c=%d ~c=%d +g=%d -g=%d ~g=%d)",
		len(d.AddedConcepts), len(d.RemovedConcepts), len(d.ChangedConcepts),
		len(d.AddedGroups), len(d.RemovedGroups), len(d.ChangedGroups))
}

// Diff computes the structural difference from this registry to other.
// Added means present only in other, removed means present only here.
func (r *Registry) Diff(other *Registry) Diff {
	var d Diff

	for id := range other.concepts {
		if _, ok := r.concepts[id]; !ok {
			d.AddedConcepts = append(d.AddedConcepts, id)
		}
	}
	for id, c := range r.concepts {
		oc, ok := other.concepts[id]
		if !ok {
			d.RemovedConcepts = append(d.RemovedConcepts, id)
		} else if !c.Equal(oc) {
			d.ChangedConcepts = append(d.ChangedConcepts, id)
		}
	}

	for name := range other.groups {
		if _, ok := r.groups[name]; !ok {
			d.AddedGroups = append(d.AddedGroups, name)
		}
	}
	for name, g := range r.groups {
		og, ok := other.groups[name]
		if !ok {
			d.RemovedGroups = append(d.RemovedGroups, name)
		} else if !g.Equal(og) {
			d.ChangedGroups = append(d.ChangedGroups, name)
		}
	}

	sort.Ints(d.AddedConcepts)
	sort.Ints(d.RemovedConcepts)
	sort.Ints(d.ChangedConcepts)
	sort.Strings(d.AddedGroups)
	sort.Strings(d.RemovedGroups)
	sort.Strings(d.ChangedGroups)
	return d
}

// MergeStrategy selects conflict behavior for Merge.
type MergeStrategy int

const (
	// MergePreferSelf keeps this registry's value on any conflict.
	MergePreferSelf MergeStrategy = iota
	// MergePreferOther keeps the argument registry's value on any conflict.
	MergePreferOther
	// MergeError fails on the first value-level conflict.
	MergeError
)

func (s MergeStrategy) String() string {
	switch s {
	case MergePreferSelf:
		return "prefer_self"
	case MergePreferOther:
		return "prefer_other"
	case MergeError:
		return "error"
	default:
		return fmt.Sprintf("MergeStrategy(%d)", int(s))
	}
}

// Merge combines two registries into a new snapshot. Conflicts are resolved
// per the strategy, independently for concepts (keyed by identifier) and
// groups (keyed by lowercase name). Schema metadata is inherited from this
// registry unless absent, in which case other's is used.
func (r *Registry) Merge(other *Registry, strategy MergeStrategy) (*Registry, error) {
	concepts := make(map[int]Concept, len(r.concepts))
	for id, c := range r.concepts {
		concepts[id] = c
	}
	for id, oc := range other.concepts {
		c, ok := concepts[id]
		if !ok {
			concepts[id] = oc
			continue
		}
		if c.Equal(oc) {
			continue
		}
		switch strategy {
		case MergePreferOther:
			concepts[id] = oc
		case MergeError:
			return nil, &ConflictError{Kind: "concept", Key: fmt.Sprintf("%d", id), Left: c, Right: oc}
		}
	}

	groups := make(map[string]Group, len(r.groups))
	for name, g := range r.groups {
		groups[name] = g
	}
	for name, og := range other.groups {
		g, ok := groups[name]
		if !ok {
			groups[name] = og
			continue
		}
		if g.Equal(og) {
			continue
		}
		switch strategy {
		case MergePreferOther:
			groups[name] = og
		case MergeError:
			return nil, &ConflictError{Kind: "group", Key: name, Left: g, Right: og}
		}
	}

	info := r.schema
	if info == nil {
		info = other.schema
	}

	mergedConcepts := make([]Concept, 0, len(concepts))
	for _, c := range concepts {
		mergedConcepts = append(mergedConcepts, c)
	}
	mergedGroups := make([]Group, 0, len(groups))
	for _, g := range groups {
		mergedGroups = append(mergedGroups, g)
	}
	return New(mergedConcepts, mergedGroups, info), nil
}

// ParseMergeStrategy maps a strategy name to its MergeStrategy value.
func ParseMergeStrategy(name string) (MergeStrategy, error) {
	switch strings.ToLower(name) {
	case "prefer_self":
		return MergePreferSelf, nil
	case "prefer_other":
		return MergePreferOther, nil
	case "error":
		return MergeError, nil
	default:
		return 0, fmt.Errorf("unknown merge strategy: %q", name)
	}
}
