package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// scriptedService returns errs in order, then reply.
type scriptedService struct {
	mu    sync.Mutex
	errs  []error
	reply string
	calls int
}

func (s *scriptedService) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return "", err
	}
	return s.reply, nil
}

func noSleep(s *RetryingService) {
	s.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
}

func TestRetryingService_RetriesTransient(t *testing.T) {
	inner := &scriptedService{
		errs:  []error{NewNetworkError("blip", nil), NewRateLimitError("mistral", nil)},
		reply: "ok",
	}
	svc := NewRetryingService(inner, DefaultRetryConfig(), noSleep)

	out, err := svc.Complete(context.Background(), "prompt", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingService_GivesUpAfterMaxAttempts(t *testing.T) {
	netErr := NewNetworkError("down", nil)
	inner := &scriptedService{errs: []error{netErr, netErr, netErr, netErr}}
	svc := NewRetryingService(inner, DefaultRetryConfig(), noSleep)

	_, err := svc.Complete(context.Background(), "prompt", 0.2)
	require.Error(t, err)
	assert.Equal(t, ErrNetworkFailed, types.CodeOf(err))
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingService_NoRetryOnPermanentError(t *testing.T) {
	authErr := NewProviderUnauthorizedError("mistral", errors.New("401"))
	inner := &scriptedService{errs: []error{authErr}, reply: "never"}
	svc := NewRetryingService(inner, DefaultRetryConfig(), noSleep)

	_, err := svc.Complete(context.Background(), "prompt", 0.2)
	assert.Same(t, authErr, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingService_BackoffHonorsContext(t *testing.T) {
	inner := &scriptedService{errs: []error{NewNetworkError("blip", nil)}, reply: "ok"}
	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = time.Hour
	cfg.MaxBackoff = time.Hour
	svc := NewRetryingService(inner, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Complete(ctx, "prompt", 0.2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, ErrTimeoutExceeded, types.CodeOf(err))
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingService_RateLimit(t *testing.T) {
	inner := &scriptedService{reply: "ok"}
	cfg := DefaultRetryConfig()
	cfg.RequestsPerSecond = 1
	cfg.Burst = 1
	svc := NewRetryingService(inner, cfg)

	_, err := svc.Complete(context.Background(), "p", 0.2)
	require.NoError(t, err)

	// The bucket is empty; a short deadline cannot wait a full second.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = svc.Complete(ctx, "p", 0.2)
	require.Error(t, err)
	assert.True(t, IsCompletionError(err))
	assert.Equal(t, 1, inner.calls)
}

func TestNewRetryingService_Normalizes(t *testing.T) {
	svc := NewRetryingService(&scriptedService{}, RetryConfig{MaxAttempts: 0, InitialBackoff: time.Minute, MaxBackoff: time.Second})
	assert.Equal(t, 1, svc.cfg.MaxAttempts)
	assert.Equal(t, time.Second, svc.cfg.InitialBackoff)
	assert.Nil(t, svc.limiter)
}
