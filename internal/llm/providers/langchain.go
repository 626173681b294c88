package providers

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// healthPrompt is sent by Health; the reply is discarded.
const healthPrompt = "ping"

// langchainProvider adapts any langchaingo llms.Model to llm.Provider. The
// prompt is sent as a single human message.
type langchainProvider struct {
	name      llm.ProviderType
	model     string
	client    llms.Model
	maxTokens int
	timeout   time.Duration
}

func newLangchainProvider(cfg llm.ProviderConfig, client llms.Model) *langchainProvider {
	return &langchainProvider{
		name:      cfg.Type,
		model:     cfg.ModelOrDefault(),
		client:    client,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
	}
}

// Name returns the provider type.
func (p *langchainProvider) Name() string {
	return string(p.name)
}

// Model returns the model requests are sent to.
func (p *langchainProvider) Model() string {
	return p.model
}

// Complete sends prompt as one user message and returns the first choice.
func (p *langchainProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return p.generate(ctx, prompt, temperature, p.maxTokens)
}

// Health sends a one-token request.
func (p *langchainProvider) Health(ctx context.Context) types.HealthStatus {
	if _, err := p.generate(ctx, healthPrompt, 0, 1); err != nil {
		return types.Unhealthy(err.Error())
	}
	return types.Healthy(p.Name() + " reachable, model " + p.model)
}

func (p *langchainProvider) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	callOpts := []llms.CallOption{
		llms.WithModel(p.model),
		llms.WithTemperature(temperature),
	}
	if maxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(maxTokens))
	}

	resp, err := p.client.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", llm.TranslateError(p.Name(), err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", llm.NewInvalidResponseError(p.Name())
	}
	return resp.Choices[0].Content, nil
}
