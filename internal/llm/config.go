package llm

import (
	"fmt"
	"time"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// ProviderType identifies a completion backend.
type ProviderType string

const (
	ProviderMistral   ProviderType = "mistral"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderGoogleAI  ProviderType = "googleai"
	ProviderMock      ProviderType = "mock"
)

// ProviderTypes lists every supported backend.
func ProviderTypes() []ProviderType {
	return []ProviderType{
		ProviderMistral,
		ProviderOpenAI,
		ProviderOllama,
		ProviderAnthropic,
		ProviderGoogleAI,
		ProviderMock,
	}
}

// IsValid reports whether t is a supported backend.
func (t ProviderType) IsValid() bool {
	for _, known := range ProviderTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// RequiresAPIKey reports whether the backend refuses unauthenticated calls.
func (t ProviderType) RequiresAPIKey() bool {
	switch t {
	case ProviderOllama, ProviderMock:
		return false
	default:
		return true
	}
}

// DefaultModel returns the model used when none is configured.
func (t ProviderType) DefaultModel() string {
	switch t {
	case ProviderMistral:
		return "mistral-small-latest"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderOllama:
		return "llama3.2"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderGoogleAI:
		return "gemini-1.5-flash"
	case ProviderMock:
		return "mock-model"
	default:
		return ""
	}
}

// DefaultTemperature is the sampling temperature used for answers.
const DefaultTemperature = 0.2

// ProviderConfig holds everything needed to construct a Provider. Credentials
// are passed in explicitly; providers never read the environment.
type ProviderConfig struct {
	Type      ProviderType
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// Responses are the canned replies of the mock provider. An empty list
	// makes the mock echo its prompt.
	Responses []string
}

// Validate checks that cfg can be used to build a provider.
func (c ProviderConfig) Validate() error {
	if !c.Type.IsValid() {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown provider type %q", c.Type))
	}
	if c.Type.RequiresAPIKey() && c.APIKey == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("provider %q requires an API key", c.Type))
	}
	if c.MaxTokens < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "max_tokens cannot be negative")
	}
	if c.Timeout < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "timeout cannot be negative")
	}
	return nil
}

// ModelOrDefault returns the configured model or the provider default.
func (c ProviderConfig) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return c.Type.DefaultModel()
}

// RetryConfig controls RetryingService.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// RequestsPerSecond caps the call rate; zero disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// DefaultRetryConfig returns three attempts with 500ms doubling backoff and
// no rate limit.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Burst:          1,
	}
}
