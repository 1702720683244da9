// Package loader materializes generic structured documents (string-keyed
// mappings, sequences, and scalars) into the engine's record types: concept
// and group records, schema metadata, storage profiles, templates, and
// value-set definitions. Parsing of the schema-description language itself
// is not this package's concern; it consumes documents that are already
// generic structure.
package loader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/omopkit/semantics/registry"
)

// Options controls loading and post-load validation.
type Options struct {
	// Validate runs registry validation after construction.
	Validate bool
	// Validation selects the checks run when Validate is set.
	Validation registry.ValidateOptions
	// Logger receives structured load diagnostics. Defaults to a no-op.
	Logger *zap.Logger
}

// DefaultOptions validates with the default strict checks enabled.
func DefaultOptions() Options {
	return Options{
		Validate:   true,
		Validation: registry.DefaultValidateOptions(),
	}
}

// Loader builds engine inputs from generic documents.
type Loader struct {
	opts Options
	log  *zap.Logger
}

// New creates a loader.
func New(opts Options) *Loader {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{opts: opts, log: log}
}

// Registry builds a validated registry snapshot from schema documents and
// instance documents.
func (l *Loader) Registry(schemaDocs, instanceDocs []map[string]any) (*registry.Registry, error) {
	info, err := SchemaInfo(schemaDocs...)
	if err != nil {
		return nil, err
	}

	var concepts []registry.Concept
	var groups []registry.Group
	for _, doc := range instanceDocs {
		cs, gs, err := l.Records(doc)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, cs...)
		groups = append(groups, gs...)
	}

	reg := registry.New(concepts, groups, info)
	l.log.Info("registry loaded",
		zap.Int("concepts", reg.Summary().Concepts),
		zap.Int("groups", reg.Summary().Groups),
		zap.Int("roles", reg.Summary().Roles))

	if l.opts.Validate {
		if err := reg.Validate(l.opts.Validation); err != nil {
			return nil, fmt.Errorf("registry validation failed: %w", err)
		}
	}
	return reg, nil
}
