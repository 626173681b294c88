package providers

import (
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/zero-day-ai/graphqa/internal/llm"
)

// DefaultOllamaURL is used when no base URL is configured.
const DefaultOllamaURL = "http://localhost:11434"

// OllamaProvider implements llm.Provider for a local Ollama server.
type OllamaProvider struct {
	*langchainProvider
}

// NewOllamaProvider creates an Ollama provider. No credentials are needed.
func NewOllamaProvider(cfg llm.ProviderConfig) (*OllamaProvider, error) {
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = DefaultOllamaURL
	}

	client, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(cfg.ModelOrDefault()),
	)
	if err != nil {
		return nil, llm.NewProviderInitError("ollama", err)
	}

	return &OllamaProvider{newLangchainProvider(cfg, client)}, nil
}
