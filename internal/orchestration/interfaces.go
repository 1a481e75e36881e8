package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/qcalc/internal/calc"
)

// CalculationResult encapsulates the outcome of a single calculator run.
// It serves as the shared domain type between orchestration and presentation layers.
type CalculationResult struct {
	// Name is the identifier of the calculator (e.g., "cyclo_polynomial").
	Name string
	// Result is the formatted value. It is the zero Result if an error occurred.
	Result calc.Result
	// Duration is the wall time of the run, including parsing.
	Duration time.Duration
	// Err contains any error that occurred during the calculation.
	Err error
}

// ProgressUpdate reports the completion fraction of one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the sender within the current batch.
	CalculatorIndex int
	// Value is the fraction done, from 0.0 to 1.0.
	Value float64
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	// Quiet suppresses the global status lines of a comparison.
	Quiet bool
	// MaxValueLength truncates long values in text output; 0 disables it.
	MaxValueLength int
}

// ProgressReporter defines the interface for displaying calculation progress.
// This interface decouples the orchestration layer from the presentation layer:
// implementations handle the visual representation (spinners, status lines)
// while the orchestration layer coordinates the calculations.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting calculation results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats (text, JSON, YAML) without modifying
// the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final calculation result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles calculation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// StatusPresenter is implemented by presenters that render the global status
// of a comparison themselves. Presenters without it get a text line on out.
type StatusPresenter interface {
	PresentStatus(status string, out io.Writer)
}
