package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omopkit/semantics/schema"
)

func testConcepts() []Concept {
	return []Concept{
		{ID: 1, Label: "Neoplasm", Role: "clinical"},
		{ID: 2, Label: "Carcinoma", Role: "clinical", Parents: []int{1}},
		{ID: 3, Label: "Adenocarcinoma", Role: "clinical", Parents: []int{2}},
		{ID: 4, Label: "Tumour grade", Role: "structural"},
		{ID: 9, Label: "Unknown", Role: RoleUnknown},
		{ID: 10, Label: "Histology unknown", Role: RoleUnknown},
	}
}

func testGroups() []Group {
	return []Group{
		{Name: "Solid Tumours", Role: "clinical", Members: []int{2, 3}},
		{Name: "Grading", Role: "structural", Members: []int{4}},
	}
}

func testRegistry() *Registry {
	return New(testConcepts(), testGroups(), nil)
}

func TestGet(t *testing.T) {
	reg := testRegistry()

	c, err := reg.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Carcinoma", c.Label)

	_, err = reg.Get(999)
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 999, nf.ID)
}

func TestTryGet(t *testing.T) {
	reg := testRegistry()

	c, ok := reg.TryGet(1)
	require.True(t, ok)
	assert.Equal(t, "Neoplasm", c.Label)

	_, ok = reg.TryGet(999)
	assert.False(t, ok)
}

func TestDuplicateConceptIDsLastWriteWins(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "First", Role: "clinical"},
		{ID: 1, Label: "Second", Role: "clinical"},
	}, nil, nil)

	c, err := reg.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Second", c.Label)
	assert.Equal(t, 1, reg.Summary().Concepts)
}

func TestByRole(t *testing.T) {
	reg := testRegistry()

	assert.Equal(t, []int{1, 2, 3}, reg.ByRole("clinical"))
	assert.Empty(t, reg.ByRole("no-such-role"))
	assert.True(t, reg.IsRole(4, "structural"))
	assert.False(t, reg.IsRole(4, "clinical"))
}

func TestByLabel(t *testing.T) {
	reg := testRegistry()

	id, ok := reg.ByLabel("carcinoma")
	require.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = reg.ByLabel("nonexistent")
	assert.False(t, ok)
}

func TestAncestorsOf(t *testing.T) {
	reg := testRegistry()

	assert.Empty(t, reg.AncestorsOf(1))
	assert.Equal(t, []int{1}, reg.AncestorsOf(2))
	assert.Equal(t, []int{1, 2}, reg.AncestorsOf(3))

	// Idempotent across repeated calls on the same snapshot.
	assert.Equal(t, reg.AncestorsOf(3), reg.AncestorsOf(3))
}

func TestAncestorsOfSkipsMissingParents(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "clinical", Parents: []int{42}},
	}, nil, nil)

	assert.Equal(t, []int{42}, reg.AncestorsOf(1))
}

func TestDescendantsOfIsDirectChildrenOnly(t *testing.T) {
	reg := testRegistry()

	// 3 is a grandchild of 1 via 2; only the direct child appears.
	assert.Equal(t, []int{2}, reg.DescendantsOf(1))
	assert.Equal(t, []int{3}, reg.DescendantsOf(2))
	assert.Empty(t, reg.DescendantsOf(3))
}

func TestGroupQueries(t *testing.T) {
	reg := testRegistry()

	g, err := reg.Group("solid tumours")
	require.NoError(t, err)
	assert.Equal(t, "Solid Tumours", g.Name)

	_, err = reg.Group("missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	members, err := reg.GroupMembers("Solid Tumours")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, members)

	assert.Equal(t, []string{"Solid Tumours"}, reg.GroupsFor(2))
	assert.True(t, reg.InGroup(2, "Solid Tumours"))
	assert.False(t, reg.InGroup(1, "Solid Tumours"))

	byRole := reg.GroupsByRole("structural")
	require.Len(t, byRole, 1)
	assert.Equal(t, "Grading", byRole["grading"].Name)
}

func TestDefaultUnknown(t *testing.T) {
	reg := testRegistry()

	// Exact label match tagged unknown wins.
	id, err := reg.DefaultUnknown("Histology unknown")
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	// Fallback: lowest-identifier unknown.
	id, err = reg.DefaultUnknown("no such label")
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	// A label hint matching a non-unknown concept falls through.
	id, err = reg.DefaultUnknown("Carcinoma")
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	empty := New(nil, nil, nil)
	_, err = empty.DefaultUnknown("anything")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUnknowns(t *testing.T) {
	reg := testRegistry()

	assert.Equal(t, []int{9, 10}, reg.Unknowns())
	assert.True(t, reg.IsUnknown(9))
	assert.False(t, reg.IsUnknown(1))
}

func TestWithAddedConceptDoesNotMutateOriginal(t *testing.T) {
	reg := testRegistry()
	before := reg.Summary()

	updated := reg.WithAddedConcept(Concept{ID: 50, Label: "Sarcoma", Role: "clinical"})

	assert.False(t, reg.Has(50))
	assert.Equal(t, before, reg.Summary())
	assert.Equal(t, []int{1, 2, 3}, reg.ByRole("clinical"))

	assert.True(t, updated.Has(50))
	assert.Equal(t, []int{1, 2, 3, 50}, updated.ByRole("clinical"))
}

func TestWithUpdatedConcept(t *testing.T) {
	reg := testRegistry()

	label := "Carcinoma NOS"
	updated, err := reg.WithUpdatedConcept(2, ConceptPatch{Label: &label})
	require.NoError(t, err)

	c, err := updated.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Carcinoma NOS", c.Label)
	assert.Equal(t, []int{1}, c.Parents)

	orig, err := reg.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Carcinoma", orig.Label)

	_, err = reg.WithUpdatedConcept(999, ConceptPatch{Label: &label})
	require.Error(t, err)
}

func TestWithSchemaAndRoles(t *testing.T) {
	reg := testRegistry()
	assert.Equal(t, []string{"clinical", "structural", "unknown"}, reg.Roles())

	info := schema.NewInfo([]schema.RoleDefinition{
		{Name: "clinical", Description: "clinical findings"},
		{Name: "structural"},
		{Name: "unknown"},
		{Name: "outcome"},
	}, []string{ConceptClass, GroupClass})

	withSchema := reg.WithSchema(info)
	assert.Equal(t, []string{"clinical", "outcome", "structural", "unknown"}, withSchema.Roles())
	assert.Equal(t, "clinical findings", withSchema.DescribeRole("clinical"))
	assert.Nil(t, reg.Schema())
}

func TestSummary(t *testing.T) {
	reg := testRegistry()

	assert.Equal(t, Summary{Concepts: 6, Groups: 2, Roles: 3}, reg.Summary())
}
