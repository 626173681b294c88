package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/zero-day-ai/graphqa/internal/llm"
)

// GoogleAIProvider implements llm.Provider for Google's Gemini models.
type GoogleAIProvider struct {
	*langchainProvider
}

// NewGoogleAIProvider creates a Gemini provider. An API key is required.
func NewGoogleAIProvider(cfg llm.ProviderConfig) (*GoogleAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewProviderUnauthorizedError("googleai", nil)
	}

	client, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.ModelOrDefault()),
	)
	if err != nil {
		return nil, llm.NewProviderInitError("googleai", err)
	}

	return &GoogleAIProvider{newLangchainProvider(cfg, client)}, nil
}
