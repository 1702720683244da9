package registry

import "fmt"

// Class names the schema layer must declare when round-tripping registry
// documents against it.
const (
	ConceptClass = "Concept"
	GroupClass   = "ConceptGroup"
)

// ValidateOptions selects which integrity checks Validate runs. Each check
// is independently togglable; validation never repairs anything.
type ValidateOptions struct {
	// StrictRoles requires every concept and group role to appear in the
	// schema's declared role set. Only enforced when schema metadata is
	// attached.
	StrictRoles bool
	// StrictParents requires every parent identifier to resolve and the
	// parent graph to be acyclic.
	StrictParents bool
	// StrictGroupMembers requires every group member identifier to resolve.
	StrictGroupMembers bool
	// StrictSchemaClasses requires the schema to declare the classes needed
	// for document round-tripping.
	StrictSchemaClasses bool
}

// DefaultValidateOptions enables the referential checks and leaves the
// schema-class check off.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{
		StrictRoles:        true,
		StrictParents:      true,
		StrictGroupMembers: true,
	}
}

// Validate checks registry integrity. The first failed check is returned as
// a *ValidationError naming the offending concept or group.
func (r *Registry) Validate(opts ValidateOptions) error {
	if opts.StrictSchemaClasses && r.schema != nil {
		missing := r.schema.MissingClasses([]string{ConceptClass, GroupClass})
		if len(missing) > 0 {
			return &ValidationError{
				Check:  CheckSchemaClasses,
				Detail: fmt.Sprintf("schema missing required classes: %v", missing),
			}
		}
	}

	if opts.StrictRoles && r.schema != nil {
		for _, c := range r.Concepts() {
			if !r.schema.HasRole(c.Role) {
				return &ValidationError{
					Check:     CheckRoles,
					ConceptID: c.ID,
					Detail:    fmt.Sprintf("unknown role %q for concept %d", c.Role, c.ID),
				}
			}
		}
		for _, g := range r.Groups() {
			if !r.schema.HasRole(g.Role) {
				return &ValidationError{
					Check:     CheckRoles,
					GroupName: g.Name,
					Detail:    fmt.Sprintf("unknown role %q for group %s", g.Role, g.Name),
				}
			}
		}
	}

	if opts.StrictParents {
		for _, c := range r.Concepts() {
			for _, pid := range c.Parents {
				if !r.Has(pid) {
					return &ValidationError{
						Check:     CheckParents,
						ConceptID: c.ID,
						Detail:    fmt.Sprintf("concept %d has parent %d not present in registry", c.ID, pid),
					}
				}
			}
		}
		if err := r.validateNoParentCycles(); err != nil {
			return err
		}
	}

	if opts.StrictGroupMembers {
		for _, g := range r.Groups() {
			for _, mid := range g.Members {
				if !r.Has(mid) {
					return &ValidationError{
						Check:     CheckGroupMembers,
						GroupName: g.Name,
						Detail:    fmt.Sprintf("group %q references member %d not present in registry", g.Name, mid),
					}
				}
			}
		}
	}

	return nil
}

type visitColor int

const (
	colorUnvisited visitColor = iota
	colorVisiting
	colorDone
)

// validateNoParentCycles runs a three-color depth-first search over parent
// edges. Hitting a node already in progress means the walk re-entered its
// own path, which names a node on the cycle.
func (r *Registry) validateNoParentCycles() error {
	colors := make(map[int]visitColor, len(r.concepts))

	var visit func(id int) error
	visit = func(id int) error {
		switch colors[id] {
		case colorDone:
			return nil
		case colorVisiting:
			return &ValidationError{
				Check:     CheckCycle,
				ConceptID: id,
				Detail:    fmt.Sprintf("cycle detected in concept parents involving %d", id),
			}
		}
		colors[id] = colorVisiting
		for _, pid := range r.concepts[id].Parents {
			if _, ok := r.concepts[pid]; ok {
				if err := visit(pid); err != nil {
					return err
				}
			}
		}
		colors[id] = colorDone
		return nil
	}

	for _, c := range r.Concepts() {
		if err := visit(c.ID); err != nil {
			return err
		}
	}
	return nil
}
