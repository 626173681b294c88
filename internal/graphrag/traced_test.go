package graphrag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
	"github.com/zero-day-ai/graphqa/internal/types"
)

type staticSource struct {
	facts []Fact
	err   error
}

func (s staticSource) Retrieve(ctx context.Context, query string) ([]Fact, error) {
	return s.facts, s.err
}

func newTestTelemetry(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider, *sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})
	return recorder, tp, reader, mp
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func spanAttr(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracedFactSource_Success(t *testing.T) {
	recorder, tp, reader, mp := newTestTelemetry(t)
	inner := staticSource{facts: []Fact{{"Paris CAPITAL_OF France."}}}

	traced, err := NewTracedFactSource(inner, tp.Tracer("test"), mp.Meter("test"))
	require.NoError(t, err)

	facts, err := traced.Retrieve(context.Background(), "Paris, the capital of?")
	require.NoError(t, err)
	assert.Equal(t, inner.facts, facts)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, SpanRetrieve, span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	v, ok := spanAttr(span.Attributes(), AttrTermCount)
	require.True(t, ok)
	assert.Equal(t, int64(4), v.AsInt64())
	v, ok = spanAttr(span.Attributes(), AttrFactCount)
	require.True(t, ok)
	assert.Equal(t, int64(1), v.AsInt64())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	requests, ok := findMetric(rm, MetricRetrievalRequests)
	require.True(t, ok)
	sum, ok := requests.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
	outcome, ok := sum.DataPoints[0].Attributes.Value(AttrOutcome)
	require.True(t, ok)
	assert.Equal(t, "success", outcome.AsString())

	factsMetric, ok := findMetric(rm, MetricRetrievalFacts)
	require.True(t, ok)
	hist, ok := factsMetric.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, int64(1), hist.DataPoints[0].Sum)

	_, ok = findMetric(rm, MetricRetrievalDuration)
	assert.True(t, ok)
}

func TestTracedFactSource_Error(t *testing.T) {
	recorder, tp, reader, mp := newTestTelemetry(t)
	lookupErr := types.NewError(graph.ErrCodeGraphConnectionFailed, "connection refused")

	traced, err := NewTracedFactSource(staticSource{err: lookupErr}, tp.Tracer("test"), mp.Meter("test"))
	require.NoError(t, err)

	facts, err := traced.Retrieve(context.Background(), "Paris")
	assert.Nil(t, facts)
	assert.True(t, errors.Is(err, lookupErr))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	v, ok := spanAttr(spans[0].Attributes(), AttrErrorCode)
	require.True(t, ok)
	assert.Equal(t, string(graph.ErrCodeGraphConnectionFailed), v.AsString())
	assert.NotEmpty(t, spans[0].Events())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	requests, ok := findMetric(rm, MetricRetrievalRequests)
	require.True(t, ok)
	sum := requests.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	outcome, _ := sum.DataPoints[0].Attributes.Value(AttrOutcome)
	assert.Equal(t, "error", outcome.AsString())

	_, ok = findMetric(rm, MetricRetrievalFacts)
	assert.False(t, ok)
}

func TestTracedFactSource_WrapsRetriever(t *testing.T) {
	_, tp, _, mp := newTestTelemetry(t)
	mock := newTestGraph(t)
	mock.AddRelation("Paris", "CAPITAL_OF", "France")

	traced, err := NewTracedFactSource(NewRetriever(graph.NewRelationStore(mock)), tp.Tracer("test"), mp.Meter("test"))
	require.NoError(t, err)

	var _ FactSource = traced
	facts, err := traced.Retrieve(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris CAPITAL_OF France."}, factTexts(facts))
}

func TestTracedFactSource_NilTelemetry(t *testing.T) {
	source, err := NewTracedFactSource(staticSource{facts: []Fact{{Text: "Paris capital_of France."}}}, nil, nil)
	require.NoError(t, err)

	facts, err := source.Retrieve(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, []Fact{{Text: "Paris capital_of France."}}, facts)
}
