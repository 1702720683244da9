package loader

import (
	"github.com/omopkit/semantics/schema"
)

// Enumeration name carrying declared concept roles in schema documents.
const roleEnumName = "ConceptRole"

// SchemaInfo builds schema metadata from one or more schema-description
// documents. Declared roles come from the ConceptRole enumeration's
// permissible values; declared classes from the top-level classes mapping.
// Later documents win on duplicate role names.
func SchemaInfo(docs ...map[string]any) (*schema.Info, error) {
	var roles []schema.RoleDefinition
	var classes []string

	for _, doc := range docs {
		if enums, ok := asMap(doc["enums"]); ok {
			if roleEnum, ok := asMap(enums[roleEnumName]); ok {
				if values, ok := asMap(roleEnum["permissible_values"]); ok {
					for _, name := range sortedDocKeys(values) {
						def := schema.RoleDefinition{Name: name}
						if meta, ok := asMap(values[name]); ok {
							def.Description = asString(meta["description"])
							def.Category = asString(meta["category"])
						}
						roles = append(roles, def)
					}
				}
			}
		}

		if classDefs, ok := asMap(doc["classes"]); ok {
			classes = append(classes, sortedDocKeys(classDefs)...)
		}
	}

	return schema.NewInfo(roles, classes), nil
}
