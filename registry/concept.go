package registry

// ValueKind classifies the kind of value a concept carries, when known.
type ValueKind string

const (
	ValueKindNone        ValueKind = ""
	ValueKindNumeric     ValueKind = "numeric"
	ValueKindOrdinal     ValueKind = "ordinal"
	ValueKindBoolean     ValueKind = "boolean"
	ValueKindCategorical ValueKind = "categorical"
)

// RoleUnknown tags placeholder concepts that stand in for missing or
// unmappable values.
const RoleUnknown = "unknown"

// Concept is a single vocabulary entity. Concepts are immutable: registry
// mutation operations replace them, never edit them in place.
type Concept struct {
	ID        int
	Label     string
	Role      string
	Parents   []int
	Notes     string
	ValueKind ValueKind
}

// Equal reports field-level equality, including parent order.
func (c Concept) Equal(other Concept) bool {
	if c.ID != other.ID || c.Label != other.Label || c.Role != other.Role ||
		c.Notes != other.Notes || c.ValueKind != other.ValueKind {
		return false
	}
	return equalInts(c.Parents, other.Parents)
}

// Group is a named, role-tagged collection of concept identifiers.
// Group names are unique case-insensitively within a registry.
type Group struct {
	Name      string
	Role      string
	Members   []int
	Kind      string
	Exclusive bool
	Notes     string
}

// Equal reports field-level equality, including member order.
func (g Group) Equal(other Group) bool {
	if g.Name != other.Name || g.Role != other.Role || g.Kind != other.Kind ||
		g.Exclusive != other.Exclusive || g.Notes != other.Notes {
		return false
	}
	return equalInts(g.Members, other.Members)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
