package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEngineCompileIndex(t *testing.T) {
	e := NewEngine(testTemplates(), WithLogger(zaptest.NewLogger(t)))

	require.NoError(t, e.CompileIndex())

	c, err := e.Runtime.Get("gender")
	require.NoError(t, err)
	assert.True(t, c.EntityIDs.Contains(8507))
}

func TestEngineCompileIndexError(t *testing.T) {
	e := NewEngine([]Template{
		{Name: "broken", Role: "clinical", Entity: ConceptRef{Name: "no id"}},
	})

	err := e.CompileIndex()
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
}
