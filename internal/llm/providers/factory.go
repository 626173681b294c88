package providers

import (
	"github.com/zero-day-ai/graphqa/internal/llm"
)

// NewProvider creates the provider selected by cfg.Type. The configuration is
// validated first so a missing credential fails here, not on first use.
func NewProvider(cfg llm.ProviderConfig) (llm.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case llm.ProviderMistral:
		return NewMistralProvider(cfg)
	case llm.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case llm.ProviderOllama:
		return NewOllamaProvider(cfg)
	case llm.ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case llm.ProviderGoogleAI:
		return NewGoogleAIProvider(cfg)
	case llm.ProviderMock:
		p := NewMockProvider(cfg.Responses)
		p.model = cfg.ModelOrDefault()
		return p, nil
	default:
		return nil, llm.NewProviderNotFoundError(string(cfg.Type))
	}
}
