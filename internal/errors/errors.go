package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/primecalc/internal/primes"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error, including an invalid bound.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a command-line argument error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ArgumentError represents a malformed or missing command-line argument.
// It only exists at the CLI boundary: the caller prints it together with the
// usage text and exits with ExitErrorConfig.
type ArgumentError struct {
	// Message explains the specific argument error.
	Message string
	// Cause is the underlying error, if any (e.g. a ValidationError).
	Cause error
}

// Error returns the error message for an ArgumentError.
func (e ArgumentError) Error() string { return e.Message }

// Unwrap returns the underlying cause, or nil.
func (e ArgumentError) Unwrap() error { return e.Cause }

// NewArgumentError creates a new ArgumentError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ArgumentError instance containing the formatted message.
func NewArgumentError(format string, a ...any) error {
	return ArgumentError{Message: fmt.Sprintf(format, a...)}
}

// AsArgumentError wraps err in an ArgumentError carrying the same message.
// An ArgumentError is returned unchanged.
func AsArgumentError(err error) error {
	var argErr ArgumentError
	if errors.As(err, &argErr) {
		return err
	}
	return ArgumentError{Message: err.Error(), Cause: err}
}

// EnumerationError encapsulates a failed enumeration while preserving the
// original cause and the strategy that produced it.
type EnumerationError struct {
	// Strategy is the name of the strategy that failed.
	Strategy string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e EnumerationError) Error() string {
	if e.Strategy == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e EnumerationError) Unwrap() error { return e.Cause }

// TimeoutError represents an enumeration timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is(err, context.DeadlineExceeded) match timeouts.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a memory limit exceeded condition.
type MemoryError struct {
	// Requested is the number of bytes the operation is estimated to need.
	Requested uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: estimated %d bytes exceeds limit of %d bytes", e.Requested, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies the escape sequences used when printing errors.
// A nil provider prints without color.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code without printing.
func ExitCodeFor(err error) int {
	var argErr ArgumentError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &argErr):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleEnumerationError prints a user-facing message for err and returns
// the matching exit code.
//
// Parameters:
//   - err: The error returned by an enumeration (nil means success).
//   - duration: How long the enumeration ran before failing.
//   - out: The writer for the message.
//   - colors: Escape sequences for highlighting; may be nil.
//
// Returns:
//   - int: The exit code for err.
func HandleEnumerationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCodeFor(err)
	switch {
	case primes.IsInvalidBound(err):
		var boundErr primes.InvalidBoundError
		errors.As(err, &boundErr)
		fmt.Fprintf(out, "%s%s%s\n", red, boundErr.Error(), reset)
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached after %s%s.\n", red, duration, reset)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s after %s%s%s.\n", yellow, reset, yellow, duration, reset)
	default:
		fmt.Fprintf(out, "%sStatus: Failure. An unexpected error occurred: %v%s\n", red, err, reset)
	}
	return code
}
