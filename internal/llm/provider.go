package llm

import (
	"context"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// CompletionService generates text for a fully assembled prompt. It is the
// only thing the answering pipeline knows about the generation backend.
//
// Implementations return errors carrying an LLM_* code (see IsCompletionError)
// and must honor ctx cancellation.
type CompletionService interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Provider is a CompletionService bound to one backend and model.
type Provider interface {
	CompletionService

	// Name returns the provider type, e.g. "mistral".
	Name() string

	// Model returns the model identifier requests are sent to.
	Model() string

	// Health issues a minimal request to check reachability and credentials.
	Health(ctx context.Context) types.HealthStatus
}
