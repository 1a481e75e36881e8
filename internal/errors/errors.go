package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess              = 0   // Successful run.
	ExitErrorGeneric         = 1   // Unclassified failure.
	ExitErrorTimeout         = 2   // The computation exceeded its deadline.
	ExitErrorMismatch        = 3   // Two binomial algorithms disagreed.
	ExitErrorConfig          = 4   // Invalid flags, environment or config file.
	ExitErrorInvalidArgument = 5   // A q-analogue was called outside its domain.
	ExitErrorCanceled        = 130 // Interrupted (SIGINT).
)

// ErrInvalidArgument is the sentinel matched by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a call outside a function's domain: a
// non-integer where an integer is required, a negative size, q equal to 1
// in the q-Jordan recursion or a malformed partition.
type InvalidArgumentError struct {
	Message string
}

func (e InvalidArgumentError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrInvalidArgument) hold for any InvalidArgumentError.
func (e InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// NewInvalidArgument returns an InvalidArgumentError with a formatted message.
func NewInvalidArgument(format string, a ...any) error {
	return InvalidArgumentError{Message: fmt.Sprintf(format, a...)}
}

// ConfigError represents a user configuration error, such as an invalid flag,
// environment variable or config file entry.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while evaluating a q-analogue so
// callers can tell computation failures apart from configuration ones.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection with errors.Is or errors.As.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a computation that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// MismatchError reports q-binomial algorithms that returned different
// values for the same request.
type MismatchError struct {
	// Algorithms lists the calculators that took part in the comparison.
	Algorithms []string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("results of %s are inconsistent", strings.Join(e.Algorithms, ", "))
}

// ValidationError represents an input validation failure on a named field of
// a request (HTTP query parameter, REPL command argument).
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

// WrapError wraps an error with additional context using fmt.Errorf and %w.
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

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		cfgErr      ConfigError
		timeoutErr  TimeoutError
		validErr    ValidationError
		mismatchErr MismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.Is(err, ErrInvalidArgument), errors.As(err, &validErr):
		return ExitErrorInvalidArgument
	default:
		return ExitErrorGeneric
	}
}
