package graph

import (
	"context"
	"errors"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// Graph store error codes
const (
	// Connection errors: the store cannot be reached or refuses our credentials.
	ErrCodeGraphConnectionFailed types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeGraphConnectionClosed types.ErrorCode = "GRAPH_CONNECTION_CLOSED"

	ErrCodeGraphInvalidConfig types.ErrorCode = "GRAPH_INVALID_CONFIG"

	// Query errors
	ErrCodeGraphQueryFailed   types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeGraphQueryTimeout  types.ErrorCode = "GRAPH_QUERY_TIMEOUT"
	ErrCodeGraphResultParsing types.ErrorCode = "GRAPH_RESULT_PARSING"
)

// IsConnectionError reports whether err means the store was unreachable,
// rejected authentication, or was used after Close.
func IsConnectionError(err error) bool {
	return types.HasCode(err, ErrCodeGraphConnectionFailed, ErrCodeGraphConnectionClosed)
}

// IsQueryError reports whether err is a query execution failure, including
// malformed rows and timeouts.
func IsQueryError(err error) bool {
	return types.HasCode(err, ErrCodeGraphQueryFailed, ErrCodeGraphQueryTimeout, ErrCodeGraphResultParsing)
}

// contextError wraps a context cancellation or deadline so that both the
// graph code and errors.Is(err, context.DeadlineExceeded) keep working.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return types.WrapError(ErrCodeGraphQueryTimeout, "query aborted", err)
	}
	return nil
}
