package engine

import (
	"time"

	"github.com/go-logr/logr"

	"mcpi/internal/domain"
	"mcpi/internal/geometry"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRandomSource sets the source used for sampling. Without it the engine
// seeds a stream from the operating system.
func WithRandomSource(src domain.RandomSource) Option {
	return func(e *Engine) { e.src = src }
}

// WithClassifier replaces the default classifier (default solver, ties inside).
func WithClassifier(c geometry.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithObserver sets the display collaborator. Use Observers to fan out.
func WithObserver(o domain.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger used for lifecycle events and diagnostics.
func WithLogger(l logr.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDiagnostic registers a hook receiving every ignored trigger as an
// error wrapping domain.ErrInvalidStateTransition.
func WithDiagnostic(fn func(error)) Option {
	return func(e *Engine) { e.diagnostic = fn }
}

// WithClock overrides time.Now for run start stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the run ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}
