package registry

import (
	"strings"

	"github.com/google/uuid"
)

// DumpOptions controls document emission. Zero values are usable: the
// document id is generated when absent and both class tags default to the
// round-trip classes.
type DumpOptions struct {
	ID            string
	Name          string
	Description   string
	IncludeGroups bool
	ConceptClass  string
	GroupClass    string
}

// ToDocument emits a generic structured document representing the full
// registry, suitable for re-serialization by an external writer and for
// re-loading through the loader. Entries are keyed by label with spaces
// replaced by underscores; concepts come before groups, each sorted.
func (r *Registry) ToDocument(opts DumpOptions) map[string]any {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.ConceptClass == "" {
		opts.ConceptClass = ConceptClass
	}
	if opts.GroupClass == "" {
		opts.GroupClass = GroupClass
	}

	out := map[string]any{"id": opts.ID}
	if opts.Name != "" {
		out["name"] = opts.Name
	}
	if opts.Description != "" {
		out["description"] = opts.Description
	}

	for _, c := range r.Concepts() {
		entry := map[string]any{
			"class_uri":  opts.ConceptClass,
			"concept_id": c.ID,
			"label":      c.Label,
			"role":       c.Role,
		}
		if len(c.Parents) > 0 {
			entry["parent_concepts"] = append([]int(nil), c.Parents...)
		}
		if c.Notes != "" {
			entry["notes"] = c.Notes
		}
		if c.ValueKind != ValueKindNone {
			entry["value_kind"] = string(c.ValueKind)
		}
		out[documentKey(c.Label)] = entry
	}

	if opts.IncludeGroups {
		for _, g := range r.Groups() {
			entry := map[string]any{
				"class_uri": opts.GroupClass,
				"name":      g.Name,
				"role":      g.Role,
				"members":   append([]int(nil), g.Members...),
			}
			if g.Kind != "" {
				entry["kind"] = g.Kind
			}
			if g.Exclusive {
				entry["exclusive"] = true
			}
			if g.Notes != "" {
				entry["notes"] = g.Notes
			}
			out[documentKey(g.Name)] = entry
		}
	}

	return out
}

func documentKey(label string) string {
	return strings.ReplaceAll(label, " ", "_")
}
