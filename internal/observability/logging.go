package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// sensitiveKeys are compared after lowercasing and removing underscores.
var sensitiveKeys = map[string]bool{
	"prompt":     true,
	"prompts":    true,
	"apikey":     true,
	"secret":     true,
	"secretkey":  true,
	"password":   true,
	"token":      true,
	"credential": true,
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string
	Format string
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
// An empty string means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, types.NewError(ErrInvalidConfig, fmt.Sprintf("unknown log level %q", level))
	}
}

// LoggerOption configures NewLogger.
type LoggerOption func(*loggerOptions)

type loggerOptions struct {
	export otellog.LoggerProvider
}

// WithLogExport also emits every record through provider.
func WithLogExport(provider otellog.LoggerProvider) LoggerOption {
	return func(o *loggerOptions) {
		o.export = provider
	}
}

// instrumentationName names the OpenTelemetry logger records are emitted on.
const instrumentationName = "github.com/zero-day-ai/graphqa"

// NewLogger builds a logger writing to w. Records carry trace_id and span_id
// when logged with a context holding a valid span, and sensitive attributes
// are redacted at info level and above.
func NewLogger(w io.Writer, cfg LoggingConfig, opts ...LoggerOption) (*slog.Logger, error) {
	var options loggerOptions
	for _, opt := range opts {
		opt(&options)
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = NewJSONHandler(w, level)
	case "text", "":
		handler = NewTextHandler(w, level)
	default:
		return nil, types.NewError(ErrInvalidConfig, fmt.Sprintf("unknown log format %q", cfg.Format))
	}

	if options.export != nil {
		handler = fanoutHandler{handler, NewOTelHandler(options.export, instrumentationName, level)}
	}
	return slog.New(NewTracedHandler(handler)), nil
}

// NewJSONHandler creates a new JSON log handler with the specified output and level.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// NewTextHandler creates a new text log handler with the specified output and level.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// TracedHandler decorates another handler with trace correlation and
// redaction of sensitive attributes.
type TracedHandler struct {
	next slog.Handler
}

// NewTracedHandler wraps next.
func NewTracedHandler(next slog.Handler) *TracedHandler {
	return &TracedHandler{next: next}
}

// Enabled reports whether next handles level.
func (h *TracedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds trace correlation fields and redacts sensitive values.
// Debug records are passed through unredacted.
func (h *TracedHandler) Handle(ctx context.Context, record slog.Record) error {
	out := record
	if record.Level >= slog.LevelInfo {
		out = slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		record.Attrs(func(a slog.Attr) bool {
			out.AddAttrs(redactAttr(a))
			return true
		})
	}

	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		out.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.next.Handle(ctx, out)
}

// WithAttrs redacts attributes bound with Logger.With.
func (h *TracedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &TracedHandler{next: h.next.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *TracedHandler) WithGroup(name string) slog.Handler {
	return &TracedHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = redactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	}
	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	return a
}

func isSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(strings.ReplaceAll(key, "_", ""))]
}
