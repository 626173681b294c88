package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
	"github.com/zero-day-ai/graphqa/internal/config"
	"github.com/zero-day-ai/graphqa/internal/graphrag"
	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/llm/providers"
	"github.com/zero-day-ai/graphqa/internal/observability"
	"github.com/zero-day-ai/graphqa/internal/pipeline"
	"github.com/zero-day-ai/graphqa/internal/prompt"
	"github.com/zero-day-ai/graphqa/pkg/version"
)

const (
	instrumentationName = "github.com/zero-day-ai/graphqa"
	shutdownTimeout     = 5 * time.Second
)

// app holds the wired components for one command invocation. provider and
// pipeline are nil for retrieval-only apps.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	graph    graph.GraphClient
	source   graphrag.FactSource
	provider llm.Provider
	pipeline *pipeline.Pipeline

	tracing *sdktrace.TracerProvider
	metrics *observability.Metrics
}

// buildApp wires telemetry, the graph client, the completion provider and the
// pipeline. Construction fails fast on configuration problems and on an
// unreachable graph. The caller must Close the returned app.
func (e *environment) buildApp(ctx context.Context) (*app, error) {
	return e.build(ctx, true)
}

// buildRetrieval wires only what fact retrieval needs; no completion provider
// is configured, so no API key is required.
func (e *environment) buildRetrieval(ctx context.Context) (*app, error) {
	return e.build(ctx, false)
}

func (e *environment) build(ctx context.Context, withCompletion bool) (_ *app, err error) {
	cfg := e.cfg
	a := &app{cfg: cfg, logger: e.logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if err := a.initTelemetry(ctx); err != nil {
		return nil, err
	}

	var tmpl *prompt.Template
	if withCompletion {
		tmpl, err = cfg.Prompt.Load()
		if err != nil {
			return nil, internal.WrapError(internal.ExitConfigError, "Invalid prompt template", err)
		}

		provider, err := providers.NewProvider(cfg.LLM.ProviderConfig())
		if err != nil {
			return nil, internal.WrapError(internal.ExitConfigError, "Failed to create completion provider", err)
		}
		a.provider = provider
	}

	client, err := e.newGraphClient(cfg.Graph.ClientConfig())
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "Invalid graph configuration", err)
	}
	a.graph = client
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	tracer := a.tracing.Tracer(instrumentationName)
	meter := a.metrics.MeterProvider().Meter(instrumentationName)

	retriever := graphrag.NewRetriever(
		graph.NewRelationStore(client),
		graphrag.WithParallelism(cfg.Retrieval.Parallelism),
		graphrag.WithLogger(a.logger),
	)
	a.source, err = graphrag.NewTracedFactSource(retriever, tracer, meter)
	if err != nil {
		return nil, err
	}

	if !withCompletion {
		a.logger.Debug("retrieval ready", "parallelism", retriever.Parallelism())
		return a, nil
	}

	completion := llm.NewTracedService(
		llm.NewRetryingService(a.provider, cfg.LLM.RetryConfig(), llm.WithRetryLogger(a.logger)),
		tracer, a.provider.Name(), a.provider.Model(),
	)

	a.pipeline = pipeline.New(a.source, completion,
		pipeline.WithTemplate(tmpl),
		pipeline.WithTemperature(cfg.LLM.Temperature),
		pipeline.WithLogger(a.logger),
	)

	a.logger.Debug("pipeline ready",
		"provider", a.provider.Name(),
		"model", a.provider.Model(),
		"parallelism", retriever.Parallelism(),
	)
	return a, nil
}

func (a *app) initTelemetry(ctx context.Context) error {
	tp, err := observability.InitTracing(ctx, a.cfg.Tracing.ExporterConfig(), version.Version)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "Failed to initialize tracing", err)
	}
	a.tracing = tp

	metrics, err := observability.InitMetrics(a.cfg.Metrics.EndpointConfig())
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "Failed to initialize metrics", err)
	}
	a.metrics = metrics
	if err := metrics.Start(a.logger); err != nil {
		return internal.WrapError(internal.ExitError, "Failed to start metrics endpoint", err)
	}
	return nil
}

// Close releases the graph connection and flushes telemetry. It uses its own
// deadline so it still runs after the command context was cancelled.
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if a.graph != nil {
		errs = append(errs, a.graph.Close(ctx))
	}
	if a.metrics != nil {
		errs = append(errs, a.metrics.Shutdown(ctx))
	}
	if a.tracing != nil {
		errs = append(errs, observability.ShutdownTracing(ctx, a.tracing))
	}
	if err := errors.Join(errs...); err != nil && a.logger != nil {
		a.logger.Warn("shutdown incomplete", "error", err)
	}
}

// withQueryTimeout bounds one question by the configured query timeout.
func withQueryTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// question joins command arguments into one question.
func question(args []string) string {
	return strings.Join(args, " ")
}
