package providers

import (
	"context"
	"sync"
	"time"

	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// MockCall represents a recorded call to the mock provider.
type MockCall struct {
	Prompt      string
	Temperature float64
	Timestamp   time.Time
}

// MockProvider implements llm.Provider for tests and offline use. It cycles
// through canned responses, or echoes the prompt when none are configured.
type MockProvider struct {
	mu            sync.RWMutex
	model         string
	responses     []string
	responseIndex int
	calls         []MockCall
	err           error
	delay         time.Duration
	health        types.HealthStatus
}

// NewMockProvider creates a mock provider. A nil or empty responses list
// selects echo mode.
func NewMockProvider(responses []string) *MockProvider {
	return &MockProvider{
		model:     llm.ProviderMock.DefaultModel(),
		responses: responses,
		calls:     make([]MockCall, 0),
		health:    types.Healthy("mock provider"),
	}
}

// Name returns the provider name.
func (p *MockProvider) Name() string {
	return string(llm.ProviderMock)
}

// Model returns the mock model name.
func (p *MockProvider) Model() string {
	return p.model
}

// Complete records the call and returns the next response.
func (p *MockProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, MockCall{Prompt: prompt, Temperature: temperature, Timestamp: time.Now()})
	delay := p.delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", llm.TranslateError(p.Name(), ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return "", llm.TranslateError(p.Name(), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return "", p.err
	}
	if len(p.responses) == 0 {
		return prompt, nil
	}
	response := p.responses[p.responseIndex%len(p.responses)]
	p.responseIndex++
	return response, nil
}

// Health returns the configured health status.
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

// SetError makes every Complete fail with err; nil clears it.
func (p *MockProvider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// SetDelay makes each Complete wait d (or until ctx is done).
func (p *MockProvider) SetDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
}

// SetHealthStatus configures what Health returns.
func (p *MockProvider) SetHealthStatus(status types.HealthStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = status
}

// SetResponses replaces all responses.
func (p *MockProvider) SetResponses(responses []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = responses
	p.responseIndex = 0
}

// GetCalls returns all recorded calls (thread-safe).
func (p *MockProvider) GetCalls() []MockCall {
	p.mu.RLock()
	defer p.mu.RUnlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// Reset clears recorded calls and rewinds the responses.
func (p *MockProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = make([]MockCall, 0)
	p.responseIndex = 0
}
