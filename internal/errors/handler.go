package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape codes used by HandleCalculationError.
// A nil provider prints without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// HandleCalculationError prints a message for err and returns the matching
// exit status. A nil err prints nothing and returns ExitSuccess.
//
// Parameters:
//   - err: The error returned by the calculation.
//   - duration: The elapsed time, printed for timeouts when non-zero.
//   - out: The writer for the message.
//   - colors: The escape codes to use, or nil.
//
// Returns:
//   - int: The exit status, see ExitCode.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}

	code := ExitCode(err)
	var timeoutErr TimeoutError
	switch code {
	case ExitErrorTimeout:
		if duration > 0 && !errors.As(err, &timeoutErr) {
			fmt.Fprintf(out, "%sTimeout after %s: %v%s\n", colors.Yellow(), duration, err, colors.Reset())
		} else {
			fmt.Fprintf(out, "%sTimeout: %v%s\n", colors.Yellow(), err, colors.Reset())
		}
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sCanceled: %v%s\n", colors.Yellow(), err, colors.Reset())
	case ExitErrorInvalidArgument:
		fmt.Fprintf(out, "%sInvalid argument: %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sMismatch: %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
