package semantic

import "go.uber.org/zap"

// Engine is the high-level entry point wiring together the resolver and the
// template runtime for a set of declarative templates.
type Engine struct {
	Resolver Resolver
	Runtime  *Runtime

	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine builds an engine over the given templates.
func NewEngine(templates []Template, opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.Runtime = NewRuntime(e.Resolver, templates)
	return e
}

// CompileIndex eagerly compiles and indexes every template, logging the
// outcome. Useful at startup in concurrent contexts so later lookups are
// read-only.
func (e *Engine) CompileIndex() error {
	if err := e.Runtime.CompileIndex(); err != nil {
		e.logger.Error("template compilation failed", zap.Error(err))
		return err
	}
	e.logger.Info("templates compiled",
		zap.Int("templates", len(e.Runtime.Templates(""))))
	return nil
}
