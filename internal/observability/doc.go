// Package observability sets up the ambient telemetry of graphqa: structured
// logging through log/slog, OTLP span export and a Prometheus endpoint for
// OpenTelemetry metrics.
//
// Logging records are correlated with the active span (trace_id, span_id) and
// sensitive attributes such as prompts, API keys and passwords are replaced
// with [REDACTED] at info level and above. Debug output is left untouched so a
// developer can inspect full prompts locally.
//
// Tracing and metrics are both optional. When disabled they hand out
// providers that record nothing, so instrumented components never need to
// check whether telemetry is on.
package observability
