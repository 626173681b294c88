package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/types"
)

func TestMockProvider_Responses(t *testing.T) {
	p := NewMockProvider([]string{"one", "two"})
	ctx := context.Background()

	for _, want := range []string{"one", "two", "one"} {
		got, err := p.Complete(ctx, "prompt", 0.2)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	calls := p.GetCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, "prompt", calls[0].Prompt)
	assert.Equal(t, 0.2, calls[0].Temperature)

	p.Reset()
	assert.Empty(t, p.GetCalls())
	got, err := p.Complete(ctx, "prompt", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "one", got)
}

func TestMockProvider_Echo(t *testing.T) {
	p := NewMockProvider(nil)
	got, err := p.Complete(context.Background(), "Facts:\nParis CAPITAL_OF France.", 0)
	require.NoError(t, err)
	assert.Equal(t, "Facts:\nParis CAPITAL_OF France.", got)

	p.SetResponses([]string{"fixed"})
	got, err = p.Complete(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
}

func TestMockProvider_Error(t *testing.T) {
	p := NewMockProvider(nil)
	injected := llm.NewNetworkError("down", errors.New("refused"))
	p.SetError(injected)

	_, err := p.Complete(context.Background(), "p", 0.2)
	assert.Same(t, injected, err)

	p.SetError(nil)
	_, err = p.Complete(context.Background(), "p", 0.2)
	assert.NoError(t, err)
}

func TestMockProvider_DelayHonorsContext(t *testing.T) {
	p := NewMockProvider(nil)
	p.SetDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Complete(ctx, "p", 0.2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, llm.ErrTimeoutExceeded, types.CodeOf(err))
}

func TestMockProvider_Health(t *testing.T) {
	p := NewMockProvider(nil)
	assert.True(t, p.Health(context.Background()).IsHealthy())

	p.SetHealthStatus(types.Unhealthy("down"))
	assert.Equal(t, types.HealthStateUnhealthy, p.Health(context.Background()).State)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      llm.ProviderConfig
		wantName string
		wantCode types.ErrorCode
	}{
		{"mock", llm.ProviderConfig{Type: llm.ProviderMock, Responses: []string{"hi"}}, "mock", ""},
		{"mistral", llm.ProviderConfig{Type: llm.ProviderMistral, APIKey: "test-key"}, "mistral", ""},
		{"openai", llm.ProviderConfig{Type: llm.ProviderOpenAI, APIKey: "test-key"}, "openai", ""},
		{"anthropic", llm.ProviderConfig{Type: llm.ProviderAnthropic, APIKey: "test-key"}, "anthropic", ""},
		{"ollama", llm.ProviderConfig{Type: llm.ProviderOllama}, "ollama", ""},
		{"mistral missing key", llm.ProviderConfig{Type: llm.ProviderMistral}, "", types.CONFIG_VALIDATION_FAILED},
		{"unknown", llm.ProviderConfig{Type: "bogus"}, "", types.CONFIG_VALIDATION_FAILED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, types.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.cfg.ModelOrDefault(), p.Model())
		})
	}
}

func TestProviderConstructors_RequireKey(t *testing.T) {
	_, err := NewMistralProvider(llm.ProviderConfig{Type: llm.ProviderMistral})
	assert.Equal(t, llm.ErrProviderUnauthorized, types.CodeOf(err))
	_, err = NewOpenAIProvider(llm.ProviderConfig{Type: llm.ProviderOpenAI})
	assert.Equal(t, llm.ErrProviderUnauthorized, types.CodeOf(err))
	_, err = NewAnthropicProvider(llm.ProviderConfig{Type: llm.ProviderAnthropic})
	assert.Equal(t, llm.ErrProviderUnauthorized, types.CodeOf(err))
	_, err = NewGoogleAIProvider(llm.ProviderConfig{Type: llm.ProviderGoogleAI})
	assert.Equal(t, llm.ErrProviderUnauthorized, types.CodeOf(err))
}
