package mutator

import (
	"log/slog"

	"github.com/il2js/metamodel/internal/metadata"
)

// Hooks let callers take part in a MutatingVisitor traversal.
type Hooks struct {
	// RewriteTypeReference is offered every type reference slot after the
	// reference itself was visited. Returning a different reference
	// replaces it in the slot and counts as a change for copy-on-write.
	RewriteTypeReference func(metadata.TypeReference) metadata.TypeReference

	// Observe is called once for every node reached, mutable or not.
	Observe func(node any)
}

type options struct {
	logger  *slog.Logger
	hooks   Hooks
	tracing bool
}

func defaultOptions() options {
	return options{logger: slog.Default(), tracing: true}
}

// Option configures an engine.
type Option func(*options)

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHooks installs traversal hooks. Only MutatingVisitor consults them.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithTracing enables or disables spans and metrics.
func WithTracing(enabled bool) Option {
	return func(o *options) {
		o.tracing = enabled
	}
}
