package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omopkit/semantics/registry"
	"github.com/omopkit/semantics/valueset"
)

func testUnitDoc() map[string]any {
	return map[string]any{
		"name": "histology",
		"named_enums": []any{
			map[string]any{
				"name": "grades",
				"enum_members": []any{
					map[string]any{"concept_id": 1, "label": "low"},
					map[string]any{"concept_id": 2, "label": "high"},
				},
			},
		},
		"named_groups": []any{
			map[string]any{
				"name": "grading",
				"anchors": []any{
					map[string]any{"concept_id": 30, "label": "tumour grade"},
				},
			},
		},
		"named_concepts": []any{
			map[string]any{"name": "stage", "concept_id": 40},
		},
	}
}

func TestUnitDefs(t *testing.T) {
	def, err := UnitDefs(testUnitDoc())
	require.NoError(t, err)

	assert.Equal(t, "histology", def.Name)
	require.Len(t, def.Enums, 1)
	assert.Len(t, def.Enums[0].Members, 2)
	require.Len(t, def.Groups, 1)
	require.Len(t, def.Concepts, 1)
	assert.Equal(t, 40, *def.Concepts[0].ID)
}

func TestSetSpecs(t *testing.T) {
	specs, err := SetSpecs(map[string]any{
		"valuesets": []any{
			map[string]any{"name": "oncology", "members": []any{"grades", "grading", "stage"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, []string{"grades", "grading", "stage"}, specs[0].Members)

	_, err = SetSpecs(map[string]any{
		"valuesets": []any{map[string]any{"members": []any{"x"}}},
	})
	require.ErrorContains(t, err, "missing name")
}

func TestValuesetsPipeline(t *testing.T) {
	specDoc := map[string]any{
		"valuesets": []any{
			map[string]any{"name": "oncology", "members": []any{"grades", "grading"}},
		},
	}

	ns, err := Valuesets([]map[string]any{testUnitDoc()}, []map[string]any{specDoc})
	require.NoError(t, err)

	set, err := ns.Set("oncology")
	require.NoError(t, err)

	unit, err := set.Unit("grades")
	require.NoError(t, err)
	id, err := unit.Lookup("high")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	// Singleton group interpolated as its own unit collapses to a scalar.
	unit, err = set.Unit("grading")
	require.NoError(t, err)
	id, err = unit.Scalar("grading")
	require.NoError(t, err)
	assert.Equal(t, 30, id)
}

func TestValuesetsUnknownMember(t *testing.T) {
	specDoc := map[string]any{
		"valuesets": []any{
			map[string]any{"name": "oncology", "members": []any{"missing"}},
		},
	}

	_, err := Valuesets([]map[string]any{testUnitDoc()}, []map[string]any{specDoc})
	var notFound *valueset.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unit", notFound.Kind)
}

// A dumped registry document parses back into the same records.
func TestRegistryDocumentRoundTrip(t *testing.T) {
	original := registry.New([]registry.Concept{
		{ID: 1, Label: "Neoplasm", Role: "clinical"},
		{ID: 2, Label: "Carcinoma", Role: "clinical", Parents: []int{1}, ValueKind: registry.ValueKindCategorical},
	}, []registry.Group{
		{Name: "Solid Tumours", Role: "clinical", Members: []int{1, 2}, Exclusive: true},
	}, nil)

	doc := original.ToDocument(registry.DumpOptions{Name: "fixture", IncludeGroups: true})
	data, err := EncodeDocument(doc)
	require.NoError(t, err)

	parsed, err := ParseDocument(data)
	require.NoError(t, err)

	l := New(Options{Validate: false})
	concepts, groups, err := l.Records(parsed)
	require.NoError(t, err)

	rebuilt := registry.New(concepts, groups, nil)
	assert.True(t, original.Diff(rebuilt).Empty())
}
