package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc/credentials"

	"github.com/zero-day-ai/graphqa/internal/types"
)

const defaultLogExportTimeout = 5 * time.Second

// LogExportConfig controls shipping log records to an OTLP/gRPC collector in
// addition to the local handler.
type LogExportConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

// Enabled reports whether an endpoint is configured.
func (c LogExportConfig) Enabled() bool {
	return c.Endpoint != ""
}

// InitLogExport creates a batching logger provider exporting to the OTLP
// endpoint and installs it globally. It returns nil when export is disabled.
func InitLogExport(ctx context.Context, cfg LogExportConfig, serviceVersion string) (*sdklog.LoggerProvider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, types.WrapError(ErrExporterConnection, "failed to create resource", err)
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	} else {
		opts = append(opts, otlploggrpc.WithTLSCredentials(credentials.NewTLS(nil)))
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, types.WrapError(ErrExporterConnection, "failed to create OTLP log exporter for "+cfg.Endpoint, err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter, sdklog.WithExportTimeout(defaultLogExportTimeout))),
	)
	global.SetLoggerProvider(provider)
	return provider, nil
}

// ShutdownLogExport flushes buffered records. A nil provider is a no-op.
func ShutdownLogExport(ctx context.Context, provider *sdklog.LoggerProvider) error {
	if provider == nil {
		return nil
	}
	if err := provider.Shutdown(ctx); err != nil {
		return types.WrapError(ErrShutdownTimeout, "logger provider shutdown failed", err)
	}
	return nil
}

// OTelHandler is a slog.Handler that emits records through an OpenTelemetry
// logger. Trace correlation comes from the context passed to Emit.
type OTelHandler struct {
	logger otellog.Logger
	level  slog.Leveler
	attrs  []otellog.KeyValue
	group  string
}

// NewOTelHandler emits records at or above level to a logger named
// instrumentationName from provider.
func NewOTelHandler(provider otellog.LoggerProvider, instrumentationName string, level slog.Leveler) *OTelHandler {
	return &OTelHandler{
		logger: provider.Logger(instrumentationName),
		level:  level,
	}
}

// Enabled implements slog.Handler.
func (h *OTelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *OTelHandler) Handle(ctx context.Context, record slog.Record) error {
	var out otellog.Record
	out.SetTimestamp(record.Time)
	out.SetSeverity(severity(record.Level))
	out.SetSeverityText(record.Level.String())
	out.SetBody(otellog.StringValue(record.Message))
	out.AddAttributes(h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttributes(h.convert(h.group, a)...)
		return true
	})
	h.logger.Emit(ctx, out)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *OTelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]otellog.KeyValue(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.convert(h.group, a)...)
	}
	return &clone
}

// WithGroup implements slog.Handler. Groups become dotted key prefixes.
func (h *OTelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = joinKey(h.group, name)
	return &clone
}

func (h *OTelHandler) convert(prefix string, a slog.Attr) []otellog.KeyValue {
	a.Value = a.Value.Resolve()
	key := joinKey(prefix, a.Key)

	switch a.Value.Kind() {
	case slog.KindGroup:
		var out []otellog.KeyValue
		for _, ga := range a.Value.Group() {
			out = append(out, h.convert(key, ga)...)
		}
		return out
	case slog.KindString:
		return []otellog.KeyValue{otellog.String(key, a.Value.String())}
	case slog.KindInt64:
		return []otellog.KeyValue{otellog.Int64(key, a.Value.Int64())}
	case slog.KindUint64:
		return []otellog.KeyValue{otellog.Int64(key, int64(a.Value.Uint64()))}
	case slog.KindFloat64:
		return []otellog.KeyValue{otellog.Float64(key, a.Value.Float64())}
	case slog.KindBool:
		return []otellog.KeyValue{otellog.Bool(key, a.Value.Bool())}
	default:
		return []otellog.KeyValue{otellog.String(key, a.Value.String())}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func severity(level slog.Level) otellog.Severity {
	switch {
	case level >= slog.LevelError:
		return otellog.SeverityError
	case level >= slog.LevelWarn:
		return otellog.SeverityWarn
	case level >= slog.LevelInfo:
		return otellog.SeverityInfo
	default:
		return otellog.SeverityDebug
	}
}

// fanoutHandler passes every record to each handler that accepts its level.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
