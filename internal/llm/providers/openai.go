package providers

import (
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/zero-day-ai/graphqa/internal/llm"
)

// OpenAIProvider implements llm.Provider for OpenAI and OpenAI-compatible
// endpoints (set BaseURL).
type OpenAIProvider struct {
	*langchainProvider
}

// NewOpenAIProvider creates an OpenAI provider. An API key is required.
func NewOpenAIProvider(cfg llm.ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewProviderUnauthorizedError("openai", nil)
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ModelOrDefault()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("openai", err)
	}

	return &OpenAIProvider{newLangchainProvider(cfg, client)}, nil
}
