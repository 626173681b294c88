package llm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// SpanComplete is the span name recorded around each completion call.
const SpanComplete = "graphqa.llm.complete"

// TracedService wraps a CompletionService with an OpenTelemetry span per call.
// The prompt itself is never recorded, only its length.
type TracedService struct {
	inner    CompletionService
	tracer   trace.Tracer
	provider string
	model    string
}

// NewTracedService wraps inner. provider and model are attached to each span.
// A nil tracer records nothing.
func NewTracedService(inner CompletionService, tracer trace.Tracer, provider, model string) *TracedService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &TracedService{
		inner:    inner,
		tracer:   tracer,
		provider: provider,
		model:    model,
	}
}

// Complete calls the wrapped service inside a span.
func (t *TracedService) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	ctx, span := t.tracer.Start(ctx, SpanComplete, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("gen_ai.system", t.provider),
		attribute.String("gen_ai.request.model", t.model),
		attribute.Float64("gen_ai.request.temperature", temperature),
		attribute.Int("graphqa.llm.prompt_length", len(prompt)),
	)

	out, err := t.inner.Complete(ctx, prompt, temperature)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := types.CodeOf(err); code != "" {
			span.SetAttributes(attribute.String("graphqa.error.code", string(code)))
		}
		return "", err
	}

	span.SetAttributes(attribute.Int("graphqa.llm.response_length", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}
