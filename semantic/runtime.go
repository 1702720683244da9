package semantic

import (
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Runtime binds a resolver to a collection of templates and serves compiled
// lookups. Compilation happens once: the first lookup builds the full index
// and every later query reads the cache. Safe for concurrent use.
type Runtime struct {
	resolver  Resolver
	templates []Template

	mu     sync.Mutex
	built  bool
	names  []string // declaration order
	byName *gocache.Cache
	byRole map[string][]*CompiledTemplate
}

// NewRuntime creates a runtime over the given templates.
func NewRuntime(resolver Resolver, templates []Template) *Runtime {
	return &Runtime{
		resolver:  resolver,
		templates: append([]Template(nil), templates...),
		byName:    gocache.New(gocache.NoExpiration, 0),
		byRole:    make(map[string][]*CompiledTemplate),
	}
}

// Templates returns the declarative templates, optionally filtered by role.
func (rt *Runtime) Templates(role string) []Template {
	var out []Template
	for _, t := range rt.templates {
		if role == "" || t.Role == role {
			out = append(out, t)
		}
	}
	return out
}

// Compile resolves one template into its execution-ready form. The entity
// reference is required; the value reference is resolved only when present.
func (rt *Runtime) Compile(t Template) (*CompiledTemplate, error) {
	if t.Entity == nil {
		return nil, &MissingFieldError{Reference: t.Name, Field: "entity reference"}
	}

	entityIDs, err := rt.resolver.Resolve(t.Entity)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}

	var valueIDs IDSet
	if t.Value != nil {
		valueIDs, err = rt.resolver.Resolve(t.Value)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", t.Name, err)
		}
	}

	return &CompiledTemplate{
		Name:      t.Name,
		Role:      t.Role,
		Profile:   t.Profile,
		EntityIDs: entityIDs,
		ValueIDs:  valueIDs,
	}, nil
}

// CompileIndex compiles every template exactly once and indexes the results
// by name and by role. Lookups call this lazily; calling it eagerly at
// startup is the cheap way to surface resolution errors early.
func (rt *Runtime) CompileIndex() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.compileIndexLocked()
}

func (rt *Runtime) compileIndexLocked() error {
	if rt.built {
		return nil
	}

	names := make([]string, 0, len(rt.templates))
	byName := gocache.New(gocache.NoExpiration, 0)
	byRole := make(map[string][]*CompiledTemplate)

	for _, t := range rt.templates {
		c, err := rt.Compile(t)
		if err != nil {
			return err
		}
		names = append(names, t.Name)
		byName.Set(t.Name, c, gocache.NoExpiration)
		byRole[t.Role] = append(byRole[t.Role], c)
	}

	rt.names = names
	rt.byName = byName
	rt.byRole = byRole
	rt.built = true
	return nil
}

// Get returns the compiled template with the given name.
func (rt *Runtime) Get(name string) (*CompiledTemplate, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.compileIndexLocked(); err != nil {
		return nil, err
	}
	v, ok := rt.byName.Get(name)
	if !ok {
		return nil, &TemplateNotFoundError{Name: name}
	}
	return v.(*CompiledTemplate), nil
}

// ByRole returns all compiled templates for a role, in declaration order.
// An unknown role yields an empty slice.
func (rt *Runtime) ByRole(role string) ([]*CompiledTemplate, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.compileIndexLocked(); err != nil {
		return nil, err
	}
	return append([]*CompiledTemplate(nil), rt.byRole[role]...), nil
}

// CompileAll returns every compiled template, optionally filtered by role,
// in declaration order.
func (rt *Runtime) CompileAll(role string) ([]*CompiledTemplate, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.compileIndexLocked(); err != nil {
		return nil, err
	}
	if role != "" {
		return append([]*CompiledTemplate(nil), rt.byRole[role]...), nil
	}
	out := make([]*CompiledTemplate, 0, len(rt.names))
	for _, name := range rt.names {
		if v, ok := rt.byName.Get(name); ok {
			out = append(out, v.(*CompiledTemplate))
		}
	}
	return out, nil
}

// AllowsConcept reports whether the named template's resolved entity set
// contains the identifier.
func (rt *Runtime) AllowsConcept(templateName string, id int) (bool, error) {
	c, err := rt.Get(templateName)
	if err != nil {
		return false, err
	}
	return c.EntityIDs.Contains(id), nil
}

// AllowsValue reports whether the named template's resolved value set
// contains the identifier. A template without a value slot allows nothing;
// that is not an error.
func (rt *Runtime) AllowsValue(templateName string, id int) (bool, error) {
	c, err := rt.Get(templateName)
	if err != nil {
		return false, err
	}
	return c.ValueIDs != nil && c.ValueIDs.Contains(id), nil
}
