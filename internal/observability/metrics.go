package observability

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// MetricsPath is where the Prometheus handler is mounted.
const MetricsPath = "/metrics"

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Address string
}

// Metrics owns the meter provider and, when enabled, the Prometheus registry
// and listener that expose it.
type Metrics struct {
	cfg      MetricsConfig
	provider metric.MeterProvider
	sdk      *sdkmetric.MeterProvider
	registry *prometheus.Registry
	server   *http.Server
	addr     string
}

// InitMetrics creates the meter provider. Disabled metrics use a no-op
// provider so instruments can be created unconditionally.
func InitMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{cfg: cfg, provider: noop.NewMeterProvider()}, nil
	}
	if cfg.Address == "" {
		return nil, types.NewError(ErrInvalidConfig, "metrics address is required when metrics are enabled")
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, types.WrapError(ErrExporterConnection, "failed to create prometheus exporter", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return &Metrics{
		cfg:      cfg,
		provider: provider,
		sdk:      provider,
		registry: registry,
	}, nil
}

// MeterProvider returns the provider instruments should be created from.
func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.provider
}

// Enabled reports whether metrics are exported.
func (m *Metrics) Enabled() bool {
	return m.registry != nil
}

// Handler serves the registry in the Prometheus text format. It returns
// http.NotFoundHandler when metrics are disabled.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Start binds the configured address and serves MetricsPath in the
// background. It is a no-op when metrics are disabled.
func (m *Metrics) Start(logger *slog.Logger) error {
	if !m.Enabled() {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	listener, err := net.Listen("tcp", m.cfg.Address)
	if err != nil {
		return types.WrapError(ErrMetricsServer, "failed to listen on "+m.cfg.Address, err)
	}

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, m.Handler())
	m.addr = listener.Addr().String()
	m.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("metrics endpoint listening", "address", m.addr, "path", MetricsPath)
	return nil
}

func (m *Metrics) listenAddr() string {
	return m.addr
}

// Shutdown stops the listener and the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	var errs []error
	if m.server != nil {
		if err := m.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if m.sdk != nil {
		if err := m.sdk.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return types.WrapError(ErrShutdownTimeout, "metrics shutdown failed", errors.Join(errs...))
	}
	return nil
}
