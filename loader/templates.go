package loader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/omopkit/semantics/semantic"
)

// Reference class tags recognized inside template and value-set documents.
const (
	conceptRefClass = "Concept"
	enumRefClass    = "Enum"
	groupRefClass   = "Group"
)

// Profiles extracts named storage profiles from a profiles document.
func Profiles(doc map[string]any) (map[string]semantic.Profile, error) {
	out := make(map[string]semantic.Profile)
	for _, item := range asSlice(doc["profiles"]) {
		entry, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("profile entry is not a mapping: %v", item)
		}
		name := asString(entry["name"])
		if name == "" {
			return nil, fmt.Errorf("profile missing name: %v", entry)
		}
		table := asString(entry["table"])
		conceptSlot := asString(entry["concept_slot"])
		if table == "" || conceptSlot == "" {
			return nil, fmt.Errorf("profile %q missing table or concept_slot", name)
		}
		out[name] = semantic.Profile{
			Name:        name,
			Table:       table,
			ConceptSlot: conceptSlot,
			ValueSlot:   asString(entry["value_slot"]),
		}
	}
	return out, nil
}

// Templates merges template fragment documents into one template collection,
// interpolating storage profiles by name. Duplicate group names across
// fragments are rejected; a member referencing an undeclared profile fails.
func (l *Loader) Templates(docs []map[string]any, profiles map[string]semantic.Profile) ([]semantic.Template, error) {
	var templates []semantic.Template
	seenGroups := make(map[string]struct{})

	for _, doc := range docs {
		for _, item := range asSlice(doc["groups"]) {
			group, ok := asMap(item)
			if !ok {
				return nil, fmt.Errorf("template group is not a mapping: %v", item)
			}
			groupName := asString(group["name"])
			if groupName == "" {
				return nil, fmt.Errorf("unnamed template group: %v", group)
			}
			if _, dup := seenGroups[groupName]; dup {
				return nil, fmt.Errorf("duplicate template group %q", groupName)
			}
			seenGroups[groupName] = struct{}{}

			for _, m := range asSlice(group["registry_members"]) {
				member, ok := asMap(m)
				if !ok {
					return nil, fmt.Errorf("template group %q: member is not a mapping", groupName)
				}
				tpl, err := templateRecord(member, profiles)
				if err != nil {
					return nil, fmt.Errorf("template group %q: %w", groupName, err)
				}
				templates = append(templates, tpl)
			}
			l.log.Debug("template group loaded", zap.String("group", groupName))
		}
	}

	return templates, nil
}

func templateRecord(member map[string]any, profiles map[string]semantic.Profile) (semantic.Template, error) {
	name := asString(member["name"])
	if name == "" {
		return semantic.Template{}, fmt.Errorf("template missing name: %v", member)
	}
	role := asString(member["role"])
	if role == "" {
		return semantic.Template{}, fmt.Errorf("template %q missing role", name)
	}

	profileName := asString(member["profile"])
	if profileName == "" {
		return semantic.Template{}, fmt.Errorf("template %q missing profile", name)
	}
	profile, ok := profiles[profileName]
	if !ok {
		return semantic.Template{}, fmt.Errorf("template %q references unknown profile %q", name, profileName)
	}

	tpl := semantic.Template{
		Name:    name,
		Role:    role,
		Profile: profile,
		Notes:   asString(member["notes"]),
	}

	if raw, present := member["entity_concept"]; present && raw != nil {
		ref, err := referenceRecord(raw)
		if err != nil {
			return semantic.Template{}, fmt.Errorf("template %q entity_concept: %w", name, err)
		}
		tpl.Entity = ref
	}
	if raw, present := member["value_concept"]; present && raw != nil {
		ref, err := referenceRecord(raw)
		if err != nil {
			return semantic.Template{}, fmt.Errorf("template %q value_concept: %w", name, err)
		}
		tpl.Value = ref
	}

	return tpl, nil
}

// referenceRecord builds a concept reference from its class-tagged mapping.
func referenceRecord(raw any) (semantic.Reference, error) {
	entry, ok := asMap(raw)
	if !ok {
		return nil, fmt.Errorf("reference is not a mapping: %v", raw)
	}

	name := asString(entry["name"])
	switch class := asString(entry["class_uri"]); class {
	case conceptRefClass:
		ref := semantic.ConceptRef{
			Name:  name,
			Label: asString(entry["label"]),
			Notes: asString(entry["notes"]),
		}
		if id, ok := asInt(entry["concept_id"]); ok {
			ref.ID = semantic.ID(id)
		}
		return ref, nil

	case enumRefClass:
		return semantic.EnumRef{
			Name:    name,
			Members: memberRecords(entry["enum_members"]),
			Notes:   asString(entry["notes"]),
		}, nil

	case groupRefClass:
		return semantic.GroupRef{
			Name:    name,
			Anchors: memberRecords(entry["anchors"]),
			Notes:   asString(entry["notes"]),
		}, nil

	default:
		return nil, &semantic.UnsupportedVariantError{Variant: class}
	}
}

func memberRecords(raw any) []semantic.Member {
	var out []semantic.Member
	for _, item := range asSlice(raw) {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		m := semantic.Member{Label: asString(entry["label"])}
		if id, ok := asInt(entry["concept_id"]); ok {
			m.ID = semantic.ID(id)
		}
		out = append(out, m)
	}
	return out
}
