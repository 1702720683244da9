package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omopkit/semantics/schema"
)

func fullSchema() *schema.Info {
	return schema.NewInfo([]schema.RoleDefinition{
		{Name: "clinical"},
		{Name: "structural"},
		{Name: "unknown"},
	}, []string{ConceptClass, GroupClass})
}

func TestValidateAllStrictOnValidInput(t *testing.T) {
	reg := New(testConcepts(), testGroups(), fullSchema())

	opts := DefaultValidateOptions()
	opts.StrictSchemaClasses = true
	require.NoError(t, reg.Validate(opts))
}

func TestValidateMissingParent(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "clinical", Parents: []int{42}},
	}, nil, nil)

	err := reg.Validate(DefaultValidateOptions())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckParents, ve.Check)
	assert.Equal(t, 1, ve.ConceptID)
}

func TestValidateCycle(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "clinical", Parents: []int{3}},
		{ID: 2, Label: "B", Role: "clinical", Parents: []int{1}},
		{ID: 3, Label: "C", Role: "clinical", Parents: []int{2}},
	}, nil, nil)

	err := reg.Validate(DefaultValidateOptions())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckCycle, ve.Check)
	assert.Contains(t, []int{1, 2, 3}, ve.ConceptID)
}

func TestValidateSelfParentCycle(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "clinical", Parents: []int{1}},
	}, nil, nil)

	err := reg.Validate(ValidateOptions{StrictParents: true})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckCycle, ve.Check)
	assert.Equal(t, 1, ve.ConceptID)
}

func TestValidateMissingGroupMember(t *testing.T) {
	reg := New(testConcepts(), []Group{
		{Name: "Broken", Role: "clinical", Members: []int{2, 777}},
	}, nil)

	err := reg.Validate(ValidateOptions{StrictGroupMembers: true})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckGroupMembers, ve.Check)
	assert.Equal(t, "Broken", ve.GroupName)
}

func TestValidateUnknownRole(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "made-up"},
	}, nil, fullSchema())

	err := reg.Validate(ValidateOptions{StrictRoles: true})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckRoles, ve.Check)
	assert.Equal(t, 1, ve.ConceptID)
}

func TestValidateUnknownGroupRole(t *testing.T) {
	reg := New(testConcepts(), []Group{
		{Name: "Odd", Role: "made-up", Members: []int{1}},
	}, fullSchema())

	err := reg.Validate(ValidateOptions{StrictRoles: true})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckRoles, ve.Check)
	assert.Equal(t, "Odd", ve.GroupName)
}

func TestValidateRolesWithoutSchemaIsNoop(t *testing.T) {
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "anything-goes"},
	}, nil, nil)

	require.NoError(t, reg.Validate(ValidateOptions{StrictRoles: true}))
}

func TestValidateSchemaClasses(t *testing.T) {
	info := schema.NewInfo([]schema.RoleDefinition{{Name: "clinical"}}, []string{ConceptClass})
	reg := New([]Concept{{ID: 1, Label: "A", Role: "clinical"}}, nil, info)

	err := reg.Validate(ValidateOptions{StrictSchemaClasses: true})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CheckSchemaClasses, ve.Check)
	assert.Contains(t, ve.Detail, GroupClass)
}

func TestValidateChecksIndependentlyTogglable(t *testing.T) {
	// Broken parents, but only group members checked.
	reg := New([]Concept{
		{ID: 1, Label: "A", Role: "clinical", Parents: []int{42}},
	}, nil, nil)

	require.NoError(t, reg.Validate(ValidateOptions{StrictGroupMembers: true}))
}
