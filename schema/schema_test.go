package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() *Info {
	return NewInfo([]RoleDefinition{
		{Name: "clinical", Description: "clinically observed", Category: "observation"},
		{Name: "structural"},
		{Name: "unknown"},
	}, []string{"Concept", "ConceptGroup"})
}

func TestInfoRoles(t *testing.T) {
	info := testInfo()

	assert.Equal(t, []string{"clinical", "structural", "unknown"}, info.Roles())
	assert.True(t, info.HasRole("clinical"))
	assert.False(t, info.HasRole("imaging"))

	def, ok := info.Role("clinical")
	require.True(t, ok)
	assert.Equal(t, "observation", def.Category)

	assert.Equal(t, "clinically observed", info.Describe("clinical"))
	assert.Empty(t, info.Describe("structural"))
	assert.Empty(t, info.Describe("imaging"))
}

func TestInfoDuplicateRolesLastWins(t *testing.T) {
	info := NewInfo([]RoleDefinition{
		{Name: "clinical", Description: "first"},
		{Name: "clinical", Description: "second"},
	}, nil)

	assert.Equal(t, "second", info.Describe("clinical"))
	assert.Len(t, info.Roles(), 1)
}

func TestInfoClasses(t *testing.T) {
	info := testInfo()

	assert.Equal(t, []string{"Concept", "ConceptGroup"}, info.Classes())
	assert.True(t, info.HasClass("Concept"))
	assert.False(t, info.HasClass("Template"))

	missing := info.MissingClasses([]string{"Template", "Concept", "ValueSet"})
	assert.Equal(t, []string{"Template", "ValueSet"}, missing)
	assert.Empty(t, info.MissingClasses([]string{"Concept"}))
}

func TestInfoString(t *testing.T) {
	out := testInfo().String()

	assert.Contains(t, out, "Roles:   3")
	assert.Contains(t, out, "Classes: 2")
	assert.Contains(t, out, "- clinical: clinically observed")
}
