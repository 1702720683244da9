// Package schema holds the role and class metadata declared by the
// vocabulary schema layer. The registry treats this as an optional oracle:
// it is consulted during validation and for documentation, never for graph
// queries.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// RoleDefinition describes one declared concept role.
type RoleDefinition struct {
	Name        string
	Description string
	Category    string
}

// Info is an immutable snapshot of schema-declared roles and class names.
type Info struct {
	roles   map[string]RoleDefinition
	classes map[string]struct{}
}

// NewInfo builds an Info from declared roles and class names.
// Duplicate role names are last-write-wins.
func NewInfo(roles []RoleDefinition, classes []string) *Info {
	info := &Info{
		roles:   make(map[string]RoleDefinition, len(roles)),
		classes: make(map[string]struct{}, len(classes)),
	}
	for _, r := range roles {
		info.roles[r.Name] = r
	}
	for _, c := range classes {
		info.classes[c] = struct{}{}
	}
	return info
}

// Roles returns the declared role names in stable sorted order.
func (i *Info) Roles() []string {
	names := make([]string, 0, len(i.roles))
	for name := range i.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Role returns the definition for a role name.
func (i *Info) Role(name string) (RoleDefinition, bool) {
	def, ok := i.roles[name]
	return def, ok
}

// HasRole reports whether the schema declares the given role.
func (i *Info) HasRole(name string) bool {
	_, ok := i.roles[name]
	return ok
}

// Describe returns the human description for a role, or "" when the role is
// unknown or undocumented.
func (i *Info) Describe(name string) string {
	return i.roles[name].Description
}

// Classes returns the declared class names in stable sorted order.
func (i *Info) Classes() []string {
	names := make([]string, 0, len(i.classes))
	for name := range i.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasClass reports whether the schema declares the given class name.
func (i *Info) HasClass(name string) bool {
	_, ok := i.classes[name]
	return ok
}

// MissingClasses returns the subset of required class names the schema does
// not declare, sorted.
func (i *Info) MissingClasses(required []string) []string {
	var missing []string
	for _, name := range required {
		if !i.HasClass(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// String renders a compact multi-line summary of the schema metadata.
func (i *Info) String() string {
	var b strings.Builder
	b.WriteString("SchemaInfo:\n")
	b.WriteString(fmt.Sprintf("  Roles:   %d\n", len(i.roles)))
	b.WriteString(fmt.Sprintf("  Classes: %d\n", len(i.classes)))
	b.WriteString("  Role definitions:\n")
	for _, name := range i.Roles() {
		def := i.roles[name]
		if def.Description != "" {
			b.WriteString(fmt.Sprintf("    - %s: %s\n", name, def.Description))
		} else {
			b.WriteString(fmt.Sprintf("    - %s\n", name))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
