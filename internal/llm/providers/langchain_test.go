package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// fakeModel is an llms.Model that records the options it was called with.
type fakeModel struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
	deadline bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangchainProvider_Complete(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "Paris is the capital of France."}}}}
	p := newLangchainProvider(llm.ProviderConfig{Type: llm.ProviderMistral, MaxTokens: 256}, model)

	out, err := p.Complete(context.Background(), "the prompt", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", out)

	require.Len(t, model.messages, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0].Role)
	require.Len(t, model.messages[0].Parts, 1)
	assert.Equal(t, llms.TextContent{Text: "the prompt"}, model.messages[0].Parts[0])

	assert.Equal(t, "mistral-small-latest", model.opts.Model)
	assert.Equal(t, 0.2, model.opts.Temperature)
	assert.Equal(t, 256, model.opts.MaxTokens)
	assert.False(t, model.deadline)

	assert.Equal(t, "mistral", p.Name())
	assert.Equal(t, "mistral-small-latest", p.Model())
}

func TestLangchainProvider_Timeout(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "ok"}}}}
	p := newLangchainProvider(llm.ProviderConfig{Type: llm.ProviderOpenAI, Timeout: time.Minute}, model)

	_, err := p.Complete(context.Background(), "p", 0)
	require.NoError(t, err)
	assert.True(t, model.deadline)
}

func TestLangchainProvider_Errors(t *testing.T) {
	p := newLangchainProvider(llm.ProviderConfig{Type: llm.ProviderOpenAI}, &fakeModel{err: errors.New("429 Too Many Requests")})
	_, err := p.Complete(context.Background(), "p", 0.2)
	require.Error(t, err)
	assert.Equal(t, llm.ErrProviderRateLimited, types.CodeOf(err))
	assert.True(t, llm.IsRetryable(err))

	p = newLangchainProvider(llm.ProviderConfig{Type: llm.ProviderOpenAI}, &fakeModel{resp: &llms.ContentResponse{}})
	_, err = p.Complete(context.Background(), "p", 0.2)
	assert.Equal(t, llm.ErrInvalidResponse, types.CodeOf(err))
}

func TestLangchainProvider_Health(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "pong"}}}}
	p := newLangchainProvider(llm.ProviderConfig{Type: llm.ProviderOllama}, model)
	assert.True(t, p.Health(context.Background()).IsHealthy())
	assert.Equal(t, 1, model.opts.MaxTokens)

	p = newLangchainProvider(llm.ProviderConfig{Type: llm.ProviderOllama}, &fakeModel{err: errors.New("connection refused")})
	assert.Equal(t, types.HealthStateUnhealthy, p.Health(context.Background()).State)
}
