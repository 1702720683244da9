package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("schema", "configuration"), cfg.SchemaDir)
	assert.Equal(t, filepath.Join("schema", "instances"), cfg.InstanceDir)
	assert.True(t, cfg.Validation.StrictRoles)
	assert.True(t, cfg.Validation.StrictParents)
	assert.True(t, cfg.Validation.StrictGroupMembers)
	assert.False(t, cfg.Validation.StrictSchemaClasses)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`
schema_dir: vocab/schemas
instance_dir: vocab/instances
validation:
  strict_roles: false
  strict_schema_classes: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "semantics.yaml"), data, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "vocab/schemas", cfg.SchemaDir)
	assert.Equal(t, "vocab/instances", cfg.InstanceDir)
	assert.False(t, cfg.Validation.StrictRoles)
	assert.True(t, cfg.Validation.StrictSchemaClasses)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "semantics.yaml"), []byte("schema_dir: ["), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestValidationOptions(t *testing.T) {
	v := ValidationConfig{StrictRoles: true, StrictGroupMembers: true}
	opts := v.Options()

	assert.True(t, opts.StrictRoles)
	assert.False(t, opts.StrictParents)
	assert.True(t, opts.StrictGroupMembers)
	assert.False(t, opts.StrictSchemaClasses)
}
