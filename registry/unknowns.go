package registry

// UnknownReason classifies why a value was recorded as unknown.
type UnknownReason string

const (
	ReasonMissing       UnknownReason = "missing"
	ReasonNotRecorded   UnknownReason = "not_recorded"
	ReasonNotApplicable UnknownReason = "not_applicable"
	ReasonAmbiguous     UnknownReason = "ambiguous"
	ReasonMappingFailed UnknownReason = "mapping_failed"
	ReasonDefaultValue  UnknownReason = "default_value"
)

// UnknownValue is one fixed unknown-placeholder concept for a given context.
type UnknownValue struct {
	ConceptID int
	Label     string
	Reason    UnknownReason
}

// DefaultUnknowns returns the standard unknown-placeholder table keyed by
// context. Callers pass the table (or their own) explicitly to wherever
// placeholders are needed; there is no implicit package-level default.
func DefaultUnknowns() map[string]UnknownValue {
	return map[string]UnknownValue{
		"generic":             {ConceptID: 4129922, Label: "Unknown", Reason: ReasonMissing},
		"gender":              {ConceptID: 4214687, Label: "Gender Unknown", Reason: ReasonMissing},
		"condition":           {ConceptID: 44790729, Label: "Unknown problem", Reason: ReasonMappingFailed},
		"cancer":              {ConceptID: 36402660, Label: "Unknown histology of unknown primary site", Reason: ReasonMappingFailed},
		"grade":               {ConceptID: 4264626, Label: "Grade not determined", Reason: ReasonNotRecorded},
		"stage":               {ConceptID: 36768646, Label: "Cancer Modifier Origin Grade X", Reason: ReasonNotRecorded},
		"cob":                 {ConceptID: 40482029, Label: "Country of birth unknown", Reason: ReasonMissing},
		"stage_edition":       {ConceptID: 1634449, Label: "8th", Reason: ReasonDefaultValue},
		"therapeutic_regimen": {ConceptID: 4207655, Label: "prescription of therapeutic regimen", Reason: ReasonMappingFailed},
		"drug_trial":          {ConceptID: 4090378, Label: "clinical drug trial", Reason: ReasonAmbiguous},
	}
}

// UnknownConcepts converts an unknown-placeholder table into concept records
// tagged with the unknown role, ready to be registered.
func UnknownConcepts(table map[string]UnknownValue) []Concept {
	out := make([]Concept, 0, len(table))
	for context, uv := range table {
		out = append(out, Concept{
			ID:    uv.ConceptID,
			Label: uv.Label,
			Role:  RoleUnknown,
			Notes: context,
		})
	}
	return out
}
