package loader

import (
	"fmt"

	"github.com/omopkit/semantics/semantic"
	"github.com/omopkit/semantics/valueset"
)

// UnitDefs extracts declarative semantic-unit definitions from a document.
func UnitDefs(doc map[string]any) (valueset.UnitDef, error) {
	def := valueset.UnitDef{Name: asString(doc["name"])}

	for _, item := range asSlice(doc["named_enums"]) {
		entry, ok := asMap(item)
		if !ok {
			return valueset.UnitDef{}, fmt.Errorf("named enum is not a mapping: %v", item)
		}
		def.Enums = append(def.Enums, semantic.EnumRef{
			Name:    asString(entry["name"]),
			Members: memberRecords(entry["enum_members"]),
			Notes:   asString(entry["notes"]),
		})
	}

	for _, item := range asSlice(doc["named_groups"]) {
		entry, ok := asMap(item)
		if !ok {
			return valueset.UnitDef{}, fmt.Errorf("named group is not a mapping: %v", item)
		}
		def.Groups = append(def.Groups, semantic.GroupRef{
			Name:    asString(entry["name"]),
			Anchors: memberRecords(entry["anchors"]),
			Notes:   asString(entry["notes"]),
		})
	}

	for _, item := range asSlice(doc["named_concepts"]) {
		entry, ok := asMap(item)
		if !ok {
			return valueset.UnitDef{}, fmt.Errorf("named concept is not a mapping: %v", item)
		}
		ref := semantic.ConceptRef{
			Name:  asString(entry["name"]),
			Label: asString(entry["label"]),
			Notes: asString(entry["notes"]),
		}
		if id, ok := asInt(entry["concept_id"]); ok {
			ref.ID = semantic.ID(id)
		}
		def.Concepts = append(def.Concepts, ref)
	}

	return def, nil
}

// SetSpecs extracts raw value-set specs (name plus unit-name members).
func SetSpecs(doc map[string]any) ([]valueset.SetSpec, error) {
	var specs []valueset.SetSpec
	for _, item := range asSlice(doc["valuesets"]) {
		entry, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("valueset entry is not a mapping: %v", item)
		}
		name := asString(entry["name"])
		if name == "" {
			return nil, fmt.Errorf("valueset missing name: %v", entry)
		}
		spec := valueset.SetSpec{Name: name}
		for _, m := range asSlice(entry["members"]) {
			spec.Members = append(spec.Members, asString(m))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Valuesets runs the full value-set pipeline: index unit definitions,
// interpolate name-based specs, compile the lookup namespace.
func Valuesets(unitDocs, specDocs []map[string]any) (*valueset.Namespace, error) {
	var defs []valueset.UnitDef
	for _, doc := range unitDocs {
		def, err := UnitDefs(doc)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	var specs []valueset.SetSpec
	for _, doc := range specDocs {
		s, err := SetSpecs(doc)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s...)
	}

	index := valueset.IndexUnits(defs...)
	setDefs, err := valueset.Interpolate(specs, index)
	if err != nil {
		return nil, err
	}
	return valueset.Compile(setDefs), nil
}
