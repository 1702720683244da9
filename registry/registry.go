// Package registry implements the in-memory concept registry: an immutable,
// indexed snapshot of vocabulary concepts and concept groups with graph
// queries, validation, diff, and merge.
//
// A Registry never mutates in place. Every With* operation returns a fresh
// instance with all indexes rebuilt, so concurrent readers of an existing
// snapshot need no locking. The only lazily-populated state, the ancestor
// closure cache, is guarded internally.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/omopkit/semantics/schema"
)

// Registry is an immutable, indexed snapshot of concepts and groups.
type Registry struct {
	concepts map[int]Concept
	groups   map[string]Group // keyed by lowercase name
	schema   *schema.Info

	byRole         map[string]map[int]struct{}
	byLabel        map[string]int // lowercase label -> id
	groupsByMember map[int]map[string]struct{}

	ancestorMu sync.Mutex
	ancestors  map[int][]int
}

// New builds a registry from concept and group records. Duplicate concept
// identifiers are last-write-wins; duplicate group names (case-insensitive)
// likewise. The schema info may be nil.
func New(concepts []Concept, groups []Group, info *schema.Info) *Registry {
	r := &Registry{
		concepts:       make(map[int]Concept, len(concepts)),
		groups:         make(map[string]Group, len(groups)),
		schema:         info,
		byRole:         make(map[string]map[int]struct{}),
		byLabel:        make(map[string]int),
		groupsByMember: make(map[int]map[string]struct{}),
		ancestors:      make(map[int][]int),
	}

	for _, g := range groups {
		g.Members = append([]int(nil), g.Members...)
		r.groups[strings.ToLower(g.Name)] = g
		for _, id := range g.Members {
			set, ok := r.groupsByMember[id]
			if !ok {
				set = make(map[string]struct{})
				r.groupsByMember[id] = set
			}
			set[g.Name] = struct{}{}
		}
	}

	for _, c := range concepts {
		c.Parents = append([]int(nil), c.Parents...)
		r.concepts[c.ID] = c
		set, ok := r.byRole[c.Role]
		if !ok {
			set = make(map[int]struct{})
			r.byRole[c.Role] = set
		}
		set[c.ID] = struct{}{}
		r.byLabel[strings.ToLower(c.Label)] = c.ID
	}

	return r
}

// Schema returns the schema metadata attached to this registry, or nil.
func (r *Registry) Schema() *schema.Info {
	return r.schema
}

// Get returns the concept with the given identifier.
func (r *Registry) Get(id int) (Concept, error) {
	c, ok := r.concepts[id]
	if !ok {
		return Concept{}, &NotFoundError{Kind: "concept", ID: id}
	}
	return c, nil
}

// TryGet returns the concept with the given identifier, if present.
func (r *Registry) TryGet(id int) (Concept, bool) {
	c, ok := r.concepts[id]
	return c, ok
}

// Has reports whether a concept with the given identifier is registered.
func (r *Registry) Has(id int) bool {
	_, ok := r.concepts[id]
	return ok
}

// Concepts returns all registered concepts sorted by identifier.
func (r *Registry) Concepts() []Concept {
	out := make([]Concept, 0, len(r.concepts))
	for _, c := range r.concepts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Groups returns all registered groups sorted by lowercase name.
func (r *Registry) Groups() []Group {
	out := make([]Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Roles returns the known roles. With schema metadata attached this is the
// schema's declared role set; otherwise the roles observed in instance data.
func (r *Registry) Roles() []string {
	if r.schema != nil {
		return r.schema.Roles()
	}
	roles := make([]string, 0, len(r.byRole))
	for role := range r.byRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// DescribeRole returns the schema description for a role, or "".
func (r *Registry) DescribeRole(role string) string {
	if r.schema == nil {
		return ""
	}
	return r.schema.Describe(role)
}

// Classes returns the schema-declared class names, or nil without schema.
func (r *Registry) Classes() []string {
	if r.schema == nil {
		return nil
	}
	return r.schema.Classes()
}

// ByRole returns the identifiers of all concepts tagged with the role,
// sorted. An unknown role yields an empty slice, not an error.
func (r *Registry) ByRole(role string) []int {
	return sortedIDs(r.byRole[role])
}

// IsRole reports whether the concept carries the given role.
func (r *Registry) IsRole(id int, role string) bool {
	_, ok := r.byRole[role][id]
	return ok
}

// ByLabel resolves a concept identifier from its label, case-insensitively.
func (r *Registry) ByLabel(label string) (int, bool) {
	id, ok := r.byLabel[strings.ToLower(label)]
	return id, ok
}

// ParentsOf returns the direct parent identifiers of a concept.
func (r *Registry) ParentsOf(id int) ([]int, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), c.Parents...), nil
}

// AncestorsOf returns the transitive closure over parent edges, sorted.
// Results are memoized per identifier; the cache is safe for concurrent use.
func (r *Registry) AncestorsOf(id int) []int {
	r.ancestorMu.Lock()
	if cached, ok := r.ancestors[id]; ok {
		r.ancestorMu.Unlock()
		return append([]int(nil), cached...)
	}
	r.ancestorMu.Unlock()

	seen := make(map[int]struct{})
	var stack []int
	if c, ok := r.concepts[id]; ok {
		stack = append(stack, c.Parents...)
	}
	for len(stack) > 0 {
		pid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, done := seen[pid]; done {
			continue
		}
		seen[pid] = struct{}{}
		if rec, ok := r.concepts[pid]; ok {
			stack = append(stack, rec.Parents...)
		}
	}

	out := sortedIDs(seen)
	r.ancestorMu.Lock()
	r.ancestors[id] = out
	r.ancestorMu.Unlock()
	return append([]int(nil), out...)
}

// DescendantsOf returns the direct children of a concept, sorted. This is an
// O(n) scan over all concepts and deliberately does not compute the full
// transitive closure; callers needing deep descendants must walk repeatedly.
func (r *Registry) DescendantsOf(id int) []int {
	var out []int
	for _, c := range r.concepts {
		for _, pid := range c.Parents {
			if pid == id {
				out = append(out, c.ID)
				break
			}
		}
	}
	sort.Ints(out)
	return out
}

// Group returns the group with the given name, case-insensitively.
func (r *Registry) Group(name string) (Group, error) {
	g, ok := r.groups[strings.ToLower(name)]
	if !ok {
		return Group{}, &NotFoundError{Kind: "group", Name: name}
	}
	return g, nil
}

// TryGroup returns the group with the given name, if present.
func (r *Registry) TryGroup(name string) (Group, bool) {
	g, ok := r.groups[strings.ToLower(name)]
	return g, ok
}

// GroupMembers returns the member identifiers of a named group.
func (r *Registry) GroupMembers(name string) ([]int, error) {
	g, err := r.Group(name)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), g.Members...), nil
}

// GroupsFor returns the names of all groups containing the concept, sorted.
func (r *Registry) GroupsFor(id int) []string {
	names := make([]string, 0, len(r.groupsByMember[id]))
	for name := range r.groupsByMember[id] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InGroup reports whether the concept is a member of the named group.
func (r *Registry) InGroup(id int, name string) bool {
	_, ok := r.groupsByMember[id][name]
	return ok
}

// GroupsByRole returns all groups tagged with the role, keyed by lowercase
// name. The result is a copy.
func (r *Registry) GroupsByRole(role string) map[string]Group {
	out := make(map[string]Group)
	for name, g := range r.groups {
		if g.Role == role {
			out[name] = g
		}
	}
	return out
}

// Unknowns returns the identifiers of all unknown-placeholder concepts.
func (r *Registry) Unknowns() []int {
	return sortedIDs(r.byRole[RoleUnknown])
}

// IsUnknown reports whether the concept is an unknown placeholder.
func (r *Registry) IsUnknown(id int) bool {
	_, ok := r.byRole[RoleUnknown][id]
	return ok
}

// DefaultUnknown resolves a default unknown-placeholder concept. An exact
// label match carrying the unknown role wins; otherwise the lowest-identifier
// unknown concept is returned. With no unknowns registered it fails.
func (r *Registry) DefaultUnknown(labelHint string) (int, error) {
	if id, ok := r.byLabel[strings.ToLower(labelHint)]; ok && r.IsUnknown(id) {
		return id, nil
	}
	unknowns := r.Unknowns()
	if len(unknowns) > 0 {
		return unknowns[0], nil
	}
	return 0, &NotFoundError{Kind: "unknown"}
}

// WithConcepts returns a new registry with the concept set replaced.
func (r *Registry) WithConcepts(concepts []Concept) *Registry {
	return New(concepts, r.Groups(), r.schema)
}

// WithGroups returns a new registry with the group set replaced.
func (r *Registry) WithGroups(groups []Group) *Registry {
	return New(r.Concepts(), groups, r.schema)
}

// WithSchema returns a new registry with the schema metadata replaced.
func (r *Registry) WithSchema(info *schema.Info) *Registry {
	return New(r.Concepts(), r.Groups(), info)
}

// WithAddedConcept returns a new registry including the given concept.
// An existing concept with the same identifier is replaced.
func (r *Registry) WithAddedConcept(c Concept) *Registry {
	concepts := r.Concepts()
	concepts = append(concepts, c)
	return New(concepts, r.Groups(), r.schema)
}

// ConceptPatch describes field changes for WithUpdatedConcept. Nil fields
// are left untouched.
type ConceptPatch struct {
	Label     *string
	Role      *string
	Parents   *[]int
	Notes     *string
	ValueKind *ValueKind
}

// WithUpdatedConcept returns a new registry with field changes applied to
// one concept.
func (r *Registry) WithUpdatedConcept(id int, patch ConceptPatch) (*Registry, error) {
	base, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Label != nil {
		base.Label = *patch.Label
	}
	if patch.Role != nil {
		base.Role = *patch.Role
	}
	if patch.Parents != nil {
		base.Parents = append([]int(nil), (*patch.Parents)...)
	}
	if patch.Notes != nil {
		base.Notes = *patch.Notes
	}
	if patch.ValueKind != nil {
		base.ValueKind = *patch.ValueKind
	}

	concepts := r.Concepts()
	for i := range concepts {
		if concepts[i].ID == id {
			concepts[i] = base
		}
	}
	return New(concepts, r.Groups(), r.schema), nil
}

// Summary holds registry-level counts.
type Summary struct {
	Concepts int
	Groups   int
	Roles    int
}

// Summary returns concept, group, and role counts for this snapshot.
func (r *Registry) Summary() Summary {
	return Summary{
		Concepts: len(r.concepts),
		Groups:   len(r.groups),
		Roles:    len(r.byRole),
	}
}

// String renders a compact multi-line summary.
func (r *Registry) String() string {
	var b strings.Builder
	b.WriteString("ConceptRegistry:\n")
	b.WriteString(fmt.Sprintf("  Concepts: %d\n", len(r.concepts)))
	b.WriteString(fmt.Sprintf("  Groups:   %d\n", len(r.groups)))
	if r.schema != nil {
		b.WriteString("  Schema:   yes\n")
	} else {
		b.WriteString("  Schema:   no\n")
	}
	b.WriteString("  Roles:")
	roles := make([]string, 0, len(r.byRole))
	for role := range r.byRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		b.WriteString(fmt.Sprintf("\n    - %s: %d", role, len(r.byRole[role])))
		if desc := r.DescribeRole(role); desc != "" {
			b.WriteString(": " + desc)
		}
	}
	return b.String()
}

func sortedIDs(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
