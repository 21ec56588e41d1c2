package mutator

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// engine holds the state both traversal engines share: host services,
// the identity cache, the containment path and the stop switch.
type engine struct {
	name     string
	host     metadata.Host
	factory  metadata.InternFactory
	platform metadata.PlatformType
	opts     options
	log      *slog.Logger

	running   atomic.Bool
	stopped   atomic.Bool
	cancelled atomic.Bool

	cache *identityCache
	path  traversalContext
	stats stats
}

func newEngine(name string, h metadata.Host, opts []Option) engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return engine{
		name:     name,
		host:     h,
		factory:  h.InternFactory(),
		platform: h.PlatformType(),
		opts:     o,
		log:      o.logger.With(slog.String("engine", name)),
		cache:    newIdentityCache(),
	}
}

// Stop makes every visit return its input unchanged from now on. Work
// already done is kept. A stopped engine stays stopped.
func (e *engine) Stop() {
	if !e.stopped.Swap(true) {
		e.log.Debug("traversal stop requested")
	}
}

func (e *engine) halted() bool { return e.stopped.Load() || e.cancelled.Load() }

// run executes body as one top-level traversal of root. reset is called
// once the engine is known to be idle, before body.
func (e *engine) run(ctx context.Context, span string, root metadata.Module, reset func(), body func()) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTraversalCancelled, err)
	}
	if !e.running.CompareAndSwap(false, true) {
		return ErrEngineBusy
	}
	defer e.running.Store(false)

	e.cache = newIdentityCache()
	e.path = traversalContext{}
	e.stats = stats{}
	e.cancelled.Store(false)
	reset()

	release := context.AfterFunc(ctx, func() { e.cancelled.Store(true) })
	defer release()

	start := time.Now()
	if e.opts.tracing {
		var s trace.Span
		ctx, s = startTraversalSpan(ctx, span, root.Name())
		defer func() {
			setTraversalSpanResult(s, e.stats, e.halted())
			s.End()
		}()
	}
	e.log.Debug("traversal started", slog.String("unit", root.Name()))

	body()

	elapsed := time.Since(start)
	if e.opts.tracing {
		recordTraversal(ctx, e.name, elapsed, e.stats)
	}
	e.log.Debug("traversal finished",
		slog.String("unit", root.Name()),
		slog.Int("values", e.stats.values),
		slog.Int("references_created", e.stats.refsNew),
		slog.Int("references_preserved", e.stats.refsKept),
		slog.Int("cache_hits", e.stats.cacheHits),
		slog.Int("dummies", e.stats.dummies),
		slog.Duration("elapsed", elapsed),
	)
	if e.cancelled.Load() {
		return fmt.Errorf("%w: %w", ErrTraversalCancelled, context.Cause(ctx))
	}
	return nil
}

func (e *engine) dummyFallback(kind string) {
	e.stats.dummies++
	e.log.Debug("no enclosing container, using dummy", slog.String("kind", kind))
}

// Context queries. An empty slot yields a dummy: the node is being
// visited outside of any container of that kind.

func (e *engine) currentUnit() metadata.Unit {
	if e.path.unit == nil {
		e.dummyFallback("unit")
		return mutable.DummyModule
	}
	return e.path.unit
}

func (e *engine) currentNamespace() metadata.UnitNamespace {
	if e.path.namespace == nil {
		e.dummyFallback("namespace")
		return mutable.DummyNamespace
	}
	return e.path.namespace
}

func (e *engine) currentType() metadata.TypeDefinition {
	if e.path.typeDef == nil {
		e.dummyFallback("type")
		return mutable.DummyType
	}
	return e.path.typeDef
}

func (e *engine) currentMethod() metadata.MethodDefinition {
	if e.path.method == nil {
		e.dummyFallback("method")
		return mutable.DummyMethod
	}
	return e.path.method
}

// each replaces every element of list with f applied to it.
func each[T any](list []T, f func(T) T) []T {
	for i, v := range list {
		list[i] = f(v)
	}
	return list
}
