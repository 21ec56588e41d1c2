package mutator

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("metamodel.mutator")
	meter  = otel.Meter("metamodel.mutator")
)

var (
	traversalDuration   metric.Float64Histogram
	nodesCopied         metric.Int64Counter
	referencesCreated   metric.Int64Counter
	referencesPreserved metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		traversalDuration, err = meter.Float64Histogram(
			"mutator_traversal_duration_seconds",
			metric.WithDescription("Duration of a top-level traversal"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesCopied, err = meter.Int64Counter(
			"mutator_nodes_copied_total",
			metric.WithDescription("Definition and value nodes copied"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		referencesCreated, err = meter.Int64Counter(
			"mutator_references_created_total",
			metric.WithDescription("Reference nodes allocated"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		referencesPreserved, err = meter.Int64Counter(
			"mutator_references_preserved_total",
			metric.WithDescription("References returned unchanged by copy-on-write"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// stats counts what one traversal did.
type stats struct {
	values    int
	refsNew   int
	refsKept  int
	cacheHits int
	dummies   int
}

func recordTraversal(ctx context.Context, engine string, d time.Duration, s stats) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("engine", engine))
	traversalDuration.Record(ctx, d.Seconds(), attrs)
	nodesCopied.Add(ctx, int64(s.values), attrs)
	referencesCreated.Add(ctx, int64(s.refsNew), attrs)
	referencesPreserved.Add(ctx, int64(s.refsKept), attrs)
}

func startTraversalSpan(ctx context.Context, name, unit string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("mutator.unit", unit)),
	)
}

func setTraversalSpanResult(span trace.Span, s stats, stopped bool) {
	span.SetAttributes(
		attribute.Int("mutator.values", s.values),
		attribute.Int("mutator.references_created", s.refsNew),
		attribute.Int("mutator.references_preserved", s.refsKept),
		attribute.Int("mutator.cache_hits", s.cacheHits),
		attribute.Bool("mutator.stopped", stopped),
	)
}
