package semantic

// Profile describes the concrete storage location a template targets: a
// table plus one or two slot names.
type Profile struct {
	Name        string
	Table       string
	ConceptSlot string
	ValueSlot   string
}

// Template is a declarative binding from concept references to a storage
// profile. The entity reference is required for compilation; the value
// reference describes the secondary slot and may be nil.
type Template struct {
	Name    string
	Role    string
	Profile Profile
	Entity  Reference
	Value   Reference
	Notes   string
}

// CompiledTemplate is a template with its references replaced by resolved
// identifier sets. ValueIDs is nil when the template defines no value slot.
type CompiledTemplate struct {
	Name      string
	Role      string
	Profile   Profile
	EntityIDs IDSet
	ValueIDs  IDSet
}
