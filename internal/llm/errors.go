package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// Completion service error codes. Every error a CompletionService returns
// carries one of these.
const (
	ErrProviderNotFound     types.ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	ErrProviderInitFailed   types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnavailable  types.ErrorCode = "LLM_PROVIDER_UNAVAILABLE"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"

	ErrModelNotFound  types.ErrorCode = "LLM_MODEL_NOT_FOUND"
	ErrInvalidRequest types.ErrorCode = "LLM_INVALID_REQUEST"

	ErrCompletionFailed types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrInvalidResponse  types.ErrorCode = "LLM_INVALID_RESPONSE"
	ErrTimeoutExceeded  types.ErrorCode = "LLM_TIMEOUT_EXCEEDED"
	ErrContextCanceled  types.ErrorCode = "LLM_CONTEXT_CANCELED"

	ErrNetworkFailed types.ErrorCode = "LLM_NETWORK_FAILED"
)

const codePrefix = "LLM_"

// IsCompletionError reports whether err came from the completion backend.
func IsCompletionError(err error) bool {
	for err != nil {
		var e *types.Error
		if !errors.As(err, &e) {
			return false
		}
		if strings.HasPrefix(string(e.Code), codePrefix) {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsRetryable determines if an error is transient and may succeed on retry.
func IsRetryable(err error) bool {
	var e *types.Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Retryable {
		return true
	}

	switch e.Code {
	case ErrNetworkFailed, ErrProviderRateLimited, ErrProviderUnavailable:
		return true
	default:
		// Auth, bad requests, unknown models and cancellation won't change.
		return false
	}
}

// NewProviderNotFoundError is returned by the factory for unknown types.
func NewProviderNotFoundError(providerName string) *types.Error {
	return types.NewError(ErrProviderNotFound, "provider not found: "+providerName)
}

// NewProviderInitError wraps a client constructor failure.
func NewProviderInitError(providerName string, cause error) *types.Error {
	return types.WrapError(ErrProviderInitFailed, "cannot initialize provider "+providerName, cause)
}

// NewProviderUnavailableError creates a retryable error for transient outages.
func NewProviderUnavailableError(providerName string, cause error) *types.Error {
	return &types.Error{
		Code:      ErrProviderUnavailable,
		Message:   "provider temporarily unavailable: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewProviderUnauthorizedError is returned when credentials are missing or rejected.
func NewProviderUnauthorizedError(providerName string, cause error) *types.Error {
	return types.WrapError(ErrProviderUnauthorized,
		fmt.Sprintf("provider '%s' authentication failed", providerName), cause)
}

// NewRateLimitError creates a retryable error for rate limiting.
func NewRateLimitError(providerName string, cause error) *types.Error {
	return &types.Error{
		Code:      ErrProviderRateLimited,
		Message:   "rate limit exceeded for provider: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewNetworkError creates a retryable error for network failures.
func NewNetworkError(message string, cause error) *types.Error {
	return &types.Error{
		Code:      ErrNetworkFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// NewInvalidResponseError is returned when the backend answers with no content.
func NewInvalidResponseError(providerName string) *types.Error {
	return types.NewError(ErrInvalidResponse, "empty response from provider "+providerName)
}

// TranslateError maps a backend error onto an LLM_* coded error. Errors that
// already carry a code are returned unchanged. Context errors stay matchable
// with errors.Is(err, context.Canceled) and context.DeadlineExceeded.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var coded *types.Error
	if errors.As(err, &coded) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return types.WrapError(ErrContextCanceled, "completion canceled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return types.WrapError(ErrTimeoutExceeded, "completion timed out", err)
	}

	lowerMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lowerMsg, "unauthorized") || strings.Contains(lowerMsg, "authentication") ||
		strings.Contains(lowerMsg, "api key") || strings.Contains(lowerMsg, "401"):
		return NewProviderUnauthorizedError(provider, err)
	case strings.Contains(lowerMsg, "rate limit") || strings.Contains(lowerMsg, "too many requests") ||
		strings.Contains(lowerMsg, "429"):
		return NewRateLimitError(provider, err)
	case strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline"):
		return types.WrapError(ErrTimeoutExceeded, "completion timed out", err)
	case strings.Contains(lowerMsg, "model") && strings.Contains(lowerMsg, "not found"):
		return types.WrapError(ErrModelNotFound, "model not found", err)
	case strings.Contains(lowerMsg, "network") || strings.Contains(lowerMsg, "connection") ||
		strings.Contains(lowerMsg, "no such host") || strings.Contains(lowerMsg, "eof"):
		return NewNetworkError("network failure calling "+provider, err)
	case strings.Contains(lowerMsg, "bad request") || strings.Contains(lowerMsg, "invalid"):
		return types.WrapError(ErrInvalidRequest, "request rejected by "+provider, err)
	case strings.Contains(lowerMsg, "unavailable") || strings.Contains(lowerMsg, "overloaded") ||
		strings.Contains(lowerMsg, "502") || strings.Contains(lowerMsg, "503"):
		return NewProviderUnavailableError(provider, err)
	default:
		return types.WrapError(ErrCompletionFailed, "completion failed", err)
	}
}
