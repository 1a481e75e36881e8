package apperrors

import (
	"context"
	"strings"
	"testing"
	"time"
)

type testColors struct{}

func (testColors) Red() string    { return "<r>" }
func (testColors) Yellow() string { return "<y>" }
func (testColors) Reset() string  { return "</>" }

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		colors   ColorProvider
		want     int
		contains string
	}{
		{"nil", nil, 0, nil, ExitSuccess, ""},
		{"invalid", NewInvalidArgument("n must be an integer"), 0, testColors{}, ExitErrorInvalidArgument, "<r>Invalid argument: n must be an integer</>"},
		{"deadline", WrapError(context.DeadlineExceeded, "q_binomial"), time.Second, nil, ExitErrorTimeout, "Timeout after 1s"},
		{"timeout error", TimeoutError{Operation: "compute", Limit: time.Second}, time.Second, nil, ExitErrorTimeout, "Timeout: operation \"compute\""},
		{"canceled", context.Canceled, 0, testColors{}, ExitErrorCanceled, "<y>Canceled"},
		{"config", NewConfigError("bad port"), 0, nil, ExitErrorConfig, "Configuration error: bad port"},
		{"mismatch", MismatchError{Algorithms: []string{"naive", "cyclo_generic"}}, 0, testColors{}, ExitErrorMismatch, "<r>Mismatch: results of naive, cyclo_generic are inconsistent</>"},
		{"generic", WrapError(errString("division by zero"), "q_int"), 0, nil, ExitErrorGeneric, "Error: q_int: division by zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			if got := HandleCalculationError(tt.err, tt.duration, &out, tt.colors); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("output %q does not contain %q", out.String(), tt.contains)
			}
			if tt.err == nil && out.Len() != 0 {
				t.Errorf("nil error printed %q", out.String())
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
