package providers

import (
	"github.com/tmc/langchaingo/llms/mistral"

	"github.com/zero-day-ai/graphqa/internal/llm"
)

// MistralProvider implements llm.Provider for Mistral's hosted models.
type MistralProvider struct {
	*langchainProvider
}

// NewMistralProvider creates a Mistral provider. An API key is required.
func NewMistralProvider(cfg llm.ProviderConfig) (*MistralProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewProviderUnauthorizedError("mistral", nil)
	}

	opts := []mistral.Option{
		mistral.WithAPIKey(cfg.APIKey),
		mistral.WithModel(cfg.ModelOrDefault()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, mistral.WithEndpoint(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mistral.WithTimeout(cfg.Timeout))
	}

	client, err := mistral.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("mistral", err)
	}

	return &MistralProvider{newLangchainProvider(cfg, client)}, nil
}
