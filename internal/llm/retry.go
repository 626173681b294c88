package llm

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RetryingService retries transient completion failures with exponential
// backoff and optionally caps the request rate with a token bucket.
//
// Only errors accepted by IsRetryable are retried. Anything else, including
// cancellation, is returned after the first attempt.
type RetryingService struct {
	inner   CompletionService
	cfg     RetryConfig
	limiter *rate.Limiter
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// RetryOption configures a RetryingService.
type RetryOption func(*RetryingService)

// WithRetryLogger sets the logger used for retry warnings.
func WithRetryLogger(logger *slog.Logger) RetryOption {
	return func(s *RetryingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRetryingService wraps inner. A MaxAttempts below 1 is treated as 1.
func NewRetryingService(inner CompletionService, cfg RetryConfig, opts ...RetryOption) *RetryingService {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.MaxBackoff > 0 && cfg.InitialBackoff > cfg.MaxBackoff {
		cfg.InitialBackoff = cfg.MaxBackoff
	}

	s := &RetryingService{
		inner:  inner,
		cfg:    cfg,
		logger: slog.Default(),
		sleep:  sleepContext,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Complete forwards to the wrapped service, retrying transient failures.
func (s *RetryingService) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	backoff := s.cfg.InitialBackoff

	for attempt := 1; ; attempt++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					err = ctxErr
				}
				return "", TranslateError("rate-limiter", err)
			}
		}

		out, err := s.inner.Complete(ctx, prompt, temperature)
		if err == nil {
			return out, nil
		}
		if attempt >= s.cfg.MaxAttempts || !IsRetryable(err) {
			return "", err
		}

		s.logger.WarnContext(ctx, "completion failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", s.cfg.MaxAttempts),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()),
		)

		if err := s.sleep(ctx, backoff); err != nil {
			return "", TranslateError("retry", err)
		}
		backoff *= 2
		if s.cfg.MaxBackoff > 0 && backoff > s.cfg.MaxBackoff {
			backoff = s.cfg.MaxBackoff
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
