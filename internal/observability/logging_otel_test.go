package observability

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
)

type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []otellog.Record
}

func (l *recordingLogger) Emit(ctx context.Context, r otellog.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

func (l *recordingLogger) Enabled(ctx context.Context, param otellog.EnabledParameters) bool {
	return true
}

func (l *recordingLogger) all() []otellog.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]otellog.Record(nil), l.records...)
}

type recordingProvider struct {
	embedded.LoggerProvider
	logger *recordingLogger
}

func (p *recordingProvider) Logger(name string, opts ...otellog.LoggerOption) otellog.Logger {
	return p.logger
}

func attrsOf(r otellog.Record) map[string]otellog.Value {
	out := make(map[string]otellog.Value)
	r.WalkAttributes(func(kv otellog.KeyValue) bool {
		out[kv.Key] = kv.Value
		return true
	})
	return out
}

func TestNewLogger_WithLogExport(t *testing.T) {
	rec := &recordingLogger{}
	local := &bytes.Buffer{}

	logger, err := NewLogger(local, LoggingConfig{Level: "info", Format: "json"},
		WithLogExport(&recordingProvider{logger: rec}))
	require.NoError(t, err)

	logger.Info("completion sent",
		"prompt", "What is Paris?",
		"count", 3,
		"ratio", 0.5,
		"cached", false,
		slog.Group("llm", "provider", "mistral"),
	)
	logger.Debug("not exported")
	logger.With("model", "mistral-small-latest").Warn("slow completion", "elapsed", 2*time.Second)

	assert.Contains(t, local.String(), "completion sent")

	records := rec.all()
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "completion sent", first.Body().AsString())
	assert.Equal(t, otellog.SeverityInfo, first.Severity())
	attrs := attrsOf(first)
	assert.Equal(t, Redacted, attrs["prompt"].AsString())
	assert.Equal(t, int64(3), attrs["count"].AsInt64())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.False(t, attrs["cached"].AsBool())
	assert.Equal(t, "mistral", attrs["llm.provider"].AsString())

	second := records[1]
	assert.Equal(t, otellog.SeverityWarn, second.Severity())
	attrs = attrsOf(second)
	assert.Equal(t, "mistral-small-latest", attrs["model"].AsString())
	assert.Equal(t, "2s", attrs["elapsed"].AsString())
}

func TestOTelHandler_WithGroup(t *testing.T) {
	rec := &recordingLogger{}
	h := NewOTelHandler(&recordingProvider{logger: rec}, "test", slog.LevelDebug)

	logger := slog.New(h).WithGroup("retrieval").With("parallelism", 2)
	logger.Debug("lookup", "term", "Paris")

	records := rec.all()
	require.Len(t, records, 1)
	attrs := attrsOf(records[0])
	assert.Equal(t, int64(2), attrs["retrieval.parallelism"].AsInt64())
	assert.Equal(t, "Paris", attrs["retrieval.term"].AsString())
	assert.Equal(t, otellog.SeverityDebug, records[0].Severity())
}

func TestInitLogExport(t *testing.T) {
	provider, err := InitLogExport(context.Background(), LogExportConfig{}, "test")
	require.NoError(t, err)
	assert.Nil(t, provider)
	assert.NoError(t, ShutdownLogExport(context.Background(), nil))

	// The gRPC exporter dials lazily, so no collector is needed here.
	provider, err = InitLogExport(context.Background(), LogExportConfig{Endpoint: "localhost:4317", Insecure: true}, "test")
	require.NoError(t, err)
	require.NotNil(t, provider)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = ShutdownLogExport(ctx, provider)
}
