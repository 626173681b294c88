// Package pipeline answers questions by grounding a completion request in
// facts retrieved from the knowledge graph.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zero-day-ai/graphqa/internal/graphrag"
	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/prompt"
)

// Result is one answered question together with the facts it was grounded on.
type Result struct {
	RequestID string          `json:"request_id"`
	Question  string          `json:"question"`
	Facts     []graphrag.Fact `json:"facts"`
	Answer    string          `json:"answer"`
}

// Pipeline composes retrieval, prompt rendering and completion. It keeps no
// state between calls and is safe for concurrent use.
type Pipeline struct {
	source      graphrag.FactSource
	completion  llm.CompletionService
	template    *prompt.Template
	temperature float64
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTemplate replaces the built-in answer template.
func WithTemplate(t *prompt.Template) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.template = t
		}
	}
}

// WithTemperature sets the sampling temperature passed to the completion service.
func WithTemperature(temperature float64) Option {
	return func(p *Pipeline) {
		p.temperature = temperature
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline.
func New(source graphrag.FactSource, completion llm.CompletionService, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:      source,
		completion:  completion,
		template:    prompt.Default(),
		temperature: llm.DefaultTemperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Temperature returns the configured sampling temperature.
func (p *Pipeline) Temperature() float64 {
	return p.temperature
}

// Facts runs retrieval only.
func (p *Pipeline) Facts(ctx context.Context, query string) ([]graphrag.Fact, error) {
	return p.source.Retrieve(ctx, query)
}

// Answer returns the completion for query, unmodified.
func (p *Pipeline) Answer(ctx context.Context, query string) (string, error) {
	res, err := p.Ask(ctx, query)
	if err != nil {
		return "", err
	}
	return res.Answer, nil
}

// Ask answers query and also returns the grounding facts. Errors from
// retrieval or completion are returned unchanged; no answer is produced
// on failure.
func (p *Pipeline) Ask(ctx context.Context, query string) (*Result, error) {
	requestID := uuid.NewString()
	logger := p.logger.With(slog.String("request_id", requestID))
	start := time.Now()

	facts, err := p.source.Retrieve(ctx, query)
	if err != nil {
		logger.DebugContext(ctx, "retrieval failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.DebugContext(ctx, "facts retrieved",
		slog.Int("facts", len(facts)),
		slog.Duration("duration", time.Since(start)),
	)

	lines := make([]string, len(facts))
	for i, f := range facts {
		lines[i] = f.Text
	}
	rendered, err := p.template.Render(prompt.ContextBlock(lines), query)
	if err != nil {
		return nil, err
	}

	completionStart := time.Now()
	answer, err := p.completion.Complete(ctx, rendered, p.temperature)
	if err != nil {
		logger.DebugContext(ctx, "completion failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.DebugContext(ctx, "answer generated",
		slog.Int("answer_length", len(answer)),
		slog.Duration("completion_duration", time.Since(completionStart)),
		slog.Duration("duration", time.Since(start)),
	)

	return &Result{
		RequestID: requestID,
		Question:  query,
		Facts:     facts,
		Answer:    answer,
	}, nil
}
