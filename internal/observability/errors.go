package observability

import (
	"github.com/zero-day-ai/graphqa/internal/types"
)

// Observability error codes.
const (
	// ErrInvalidConfig indicates a logging, tracing or metrics setting is unusable.
	ErrInvalidConfig types.ErrorCode = "OBSERVABILITY_INVALID_CONFIG"

	// ErrExporterConnection indicates failure to create or connect an exporter.
	ErrExporterConnection types.ErrorCode = "OBSERVABILITY_EXPORTER_CONNECTION"

	// ErrMetricsServer indicates the /metrics listener could not be started.
	ErrMetricsServer types.ErrorCode = "OBSERVABILITY_METRICS_SERVER"

	// ErrShutdownTimeout indicates a timeout occurred during graceful shutdown.
	ErrShutdownTimeout types.ErrorCode = "OBSERVABILITY_SHUTDOWN_TIMEOUT"
)
