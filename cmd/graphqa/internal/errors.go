package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitGraphError indicates the knowledge graph could not be reached or queried
	ExitGraphError = 12
	// ExitCompletionError indicates the completion backend failed
	ExitCompletionError = 13
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// Classify maps err to an exit code and the generic message shown to the user.
func Classify(err error) (int, string) {
	switch {
	case err == nil:
		return ExitSuccess, ""
	case errors.Is(err, context.Canceled):
		return ExitCancelled, "Operation cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout, "Operation timed out"
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code, cliErr.Message
	}

	switch {
	case types.HasCode(err,
		types.CONFIG_LOAD_FAILED,
		types.CONFIG_PARSE_FAILED,
		types.CONFIG_VALIDATION_FAILED,
		types.CONFIG_WRITE_FAILED,
		graph.ErrCodeGraphInvalidConfig):
		return ExitConfigError, "Invalid configuration"
	case graph.IsConnectionError(err):
		return ExitGraphError, "Knowledge graph is unreachable"
	case graph.IsQueryError(err):
		return ExitGraphError, "Knowledge graph query failed"
	case llm.IsCompletionError(err):
		return ExitCompletionError, "Answer generation failed"
	}
	return ExitError, "Command failed"
}

// HandleError prints a generic message for err and returns the exit code.
// The underlying cause is only printed when --verbose is set.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	code, message := Classify(err)
	cmd.PrintErrln("Error:", message)

	verboseFlag := cmd.Flag("verbose")
	if verboseFlag != nil && verboseFlag.Changed {
		cmd.PrintErrln("Cause:", err)
	}
	return code
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag.
// It is used by panic recovery, before cobra has parsed flags.
func IsVerbose() bool {
	if os.Getenv("GRAPHQA_VERBOSE") != "" {
		return true
	}
	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
