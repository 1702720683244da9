package registry

import "fmt"

// NotFoundError reports a failed lookup by identifier, name, or label.
type NotFoundError struct {
	Kind string // "concept", "group", "unknown"
	ID   int
	Name string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
	case e.Kind == "unknown":
		return "no unknown concepts registered"
	default:
		return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
	}
}

// Validation check names carried by ValidationError.
const (
	CheckRoles         = "roles"
	CheckParents       = "parents"
	CheckCycle         = "cycle"
	CheckGroupMembers  = "group_members"
	CheckSchemaClasses = "schema_classes"
)

// ValidationError reports a single failed integrity check. ConceptID or
// GroupName localizes the offending entity where applicable.
type ValidationError struct {
	Check     string
	ConceptID int
	GroupName string
	Detail    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Check, e.Detail)
}

// ConflictError reports a value-level conflict during a merge performed with
// MergeError strategy.
type ConflictError struct {
	Kind  string // "concept" or "group"
	Key   string
	Left  any
	Right any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflict on %s %s: %+v vs %+v", e.Kind, e.Key, e.Left, e.Right)
}
