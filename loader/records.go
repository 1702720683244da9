package loader

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/omopkit/semantics/registry"
)

// Header keys a registry document may carry alongside its entries.
var documentHeaderKeys = map[string]struct{}{
	"id":          {},
	"name":        {},
	"description": {},
}

// Records extracts concept and group records from one registry document.
// Entries are class-tagged mappings keyed by label; untagged entries fail.
// Duplicate concept identifiers are surfaced as warnings, matching the
// registry's last-write-wins construction.
func (l *Loader) Records(doc map[string]any) ([]registry.Concept, []registry.Group, error) {
	var concepts []registry.Concept
	var groups []registry.Group
	seenIDs := make(map[int]string)

	for _, key := range sortedDocKeys(doc) {
		if _, header := documentHeaderKeys[key]; header {
			continue
		}
		entry, ok := asMap(doc[key])
		if !ok {
			return nil, nil, fmt.Errorf("entry %q is not a mapping", key)
		}

		switch class := asString(entry["class_uri"]); class {
		case registry.ConceptClass:
			c, err := conceptRecord(key, entry)
			if err != nil {
				return nil, nil, err
			}
			if prev, dup := seenIDs[c.ID]; dup {
				l.log.Warn("duplicate concept identifier, keeping last",
					zap.Int("concept_id", c.ID),
					zap.String("previous", prev),
					zap.String("entry", key))
			}
			seenIDs[c.ID] = key
			concepts = append(concepts, c)

		case registry.GroupClass:
			g, err := groupRecord(key, entry)
			if err != nil {
				return nil, nil, err
			}
			groups = append(groups, g)

		default:
			return nil, nil, fmt.Errorf("entry %q has unsupported class %q", key, class)
		}
	}

	return concepts, groups, nil
}

func conceptRecord(key string, entry map[string]any) (registry.Concept, error) {
	id, ok := asInt(entry["concept_id"])
	if !ok {
		return registry.Concept{}, fmt.Errorf("concept %q has no concept_id", key)
	}
	label := asString(entry["label"])
	if label == "" {
		label = strings.ReplaceAll(key, "_", " ")
	}
	role := asString(entry["role"])
	if role == "" {
		return registry.Concept{}, fmt.Errorf("concept %q has no role", key)
	}
	return registry.Concept{
		ID:        id,
		Label:     label,
		Role:      role,
		Parents:   asIntSlice(entry["parent_concepts"]),
		Notes:     asString(entry["notes"]),
		ValueKind: registry.ValueKind(asString(entry["value_kind"])),
	}, nil
}

func groupRecord(key string, entry map[string]any) (registry.Group, error) {
	name := asString(entry["name"])
	if name == "" {
		name = strings.ReplaceAll(key, "_", " ")
	}
	role := asString(entry["role"])
	if role == "" {
		return registry.Group{}, fmt.Errorf("group %q has no role", key)
	}
	return registry.Group{
		Name:      name,
		Role:      role,
		Members:   asIntSlice(entry["members"]),
		Kind:      asString(entry["kind"]),
		Exclusive: asBool(entry["exclusive"]),
		Notes:     asString(entry["notes"]),
	}, nil
}

func sortedDocKeys(doc map[string]any) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
