package graphrag

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// Span and metric names emitted by TracedFactSource.
const (
	SpanRetrieve = "graphqa.retrieval.retrieve"

	MetricRetrievalRequests = "graphqa.retrieval.requests"
	MetricRetrievalFacts    = "graphqa.retrieval.facts"
	MetricRetrievalDuration = "graphqa.retrieval.duration"
)

// Attribute keys set on retrieval spans.
const (
	AttrQueryLength = attribute.Key("graphqa.retrieval.query_length")
	AttrTermCount   = attribute.Key("graphqa.retrieval.term_count")
	AttrFactCount   = attribute.Key("graphqa.retrieval.fact_count")
	AttrErrorCode   = attribute.Key("graphqa.error.code")
	AttrOutcome     = attribute.Key("outcome")
)

// TracedFactSource wraps a FactSource with a span and metrics per call.
type TracedFactSource struct {
	inner    FactSource
	tracer   trace.Tracer
	requests metric.Int64Counter
	facts    metric.Int64Histogram
	duration metric.Float64Histogram
}

// NewTracedFactSource wraps inner. A nil tracer or meter disables spans or
// metrics respectively.
func NewTracedFactSource(inner FactSource, tracer trace.Tracer, meter metric.Meter) (*TracedFactSource, error) {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("")
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("")
	}

	requests, err := meter.Int64Counter(MetricRetrievalRequests,
		metric.WithDescription("Number of retrieval calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricRetrievalRequests, err)
	}
	facts, err := meter.Int64Histogram(MetricRetrievalFacts,
		metric.WithDescription("Facts returned per retrieval"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", MetricRetrievalFacts, err)
	}
	duration, err := meter.Float64Histogram(MetricRetrievalDuration,
		metric.WithDescription("Retrieval latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", MetricRetrievalDuration, err)
	}

	return &TracedFactSource{
		inner:    inner,
		tracer:   tracer,
		requests: requests,
		facts:    facts,
		duration: duration,
	}, nil
}

// Retrieve calls the wrapped source inside a "graphqa.retrieval.retrieve" span.
func (t *TracedFactSource) Retrieve(ctx context.Context, query string) ([]Fact, error) {
	ctx, span := t.tracer.Start(ctx, SpanRetrieve)
	defer span.End()

	span.SetAttributes(
		AttrQueryLength.Int(len(query)),
		AttrTermCount.Int(len(ExtractTerms(query))),
	)

	start := time.Now()
	facts, err := t.inner.Retrieve(ctx, query)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	outcomeAttr := metric.WithAttributes(AttrOutcome.String(outcome))
	t.requests.Add(ctx, 1, outcomeAttr)
	t.duration.Record(ctx, elapsed, outcomeAttr)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := types.CodeOf(err); code != "" {
			span.SetAttributes(AttrErrorCode.String(string(code)))
		}
		return nil, err
	}

	t.facts.Record(ctx, int64(len(facts)))
	span.SetAttributes(AttrFactCount.Int(len(facts)))
	span.SetStatus(codes.Ok, "")
	return facts, nil
}
