package providers

import (
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/zero-day-ai/graphqa/internal/llm"
)

// AnthropicProvider implements llm.Provider for Anthropic's Claude models.
type AnthropicProvider struct {
	*langchainProvider
}

// NewAnthropicProvider creates an Anthropic provider. An API key is required.
func NewAnthropicProvider(cfg llm.ProviderConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewProviderUnauthorizedError("anthropic", nil)
	}

	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.ModelOrDefault()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("anthropic", err)
	}

	return &AnthropicProvider{newLangchainProvider(cfg, client)}, nil
}
