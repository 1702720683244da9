// Package config resolves where vocabulary documents live and which
// validation checks run by default, from semantics.yml and the environment.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/omopkit/semantics/registry"
)

// Config is the engine configuration.
type Config struct {
	SchemaDir   string           `mapstructure:"schema_dir"`
	InstanceDir string           `mapstructure:"instance_dir"`
	Validation  ValidationConfig `mapstructure:"validation"`
}

// ValidationConfig mirrors the registry's togglable checks.
type ValidationConfig struct {
	StrictRoles         bool `mapstructure:"strict_roles"`
	StrictParents       bool `mapstructure:"strict_parents"`
	StrictGroupMembers  bool `mapstructure:"strict_group_members"`
	StrictSchemaClasses bool `mapstructure:"strict_schema_classes"`
}

// Options converts the configuration into registry validate options.
func (v ValidationConfig) Options() registry.ValidateOptions {
	return registry.ValidateOptions{
		StrictRoles:         v.StrictRoles,
		StrictParents:       v.StrictParents,
		StrictGroupMembers:  v.StrictGroupMembers,
		StrictSchemaClasses: v.StrictSchemaClasses,
	}
}

// Load reads semantics.yml (or semantics.yaml) from the given directory,
// falling back to defaults when no config file exists. Environment
// variables override file values.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("schema_dir", filepath.Join("schema", "configuration"))
	v.SetDefault("instance_dir", filepath.Join("schema", "instances"))
	v.SetDefault("validation.strict_roles", true)
	v.SetDefault("validation.strict_parents", true)
	v.SetDefault("validation.strict_group_members", true)
	v.SetDefault("validation.strict_schema_classes", false)

	v.SetConfigName("semantics")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("semantics")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
