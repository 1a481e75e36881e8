package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/qcalc/internal/calc"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/format"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during calculations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing calculations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIColorProvider supplies the active theme to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for text
// output in the command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with
// algorithm names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := 9     // "Algorithm" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(tableDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-9),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s (%d terms)", ui.ColorGreen(), ui.ColorReset(), format.CountTerms(res.Result.Value))
		}
		duration := tableDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final calculation result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result.Result)
		return
	}
	DisplayResult(result.Result, opts.Verbose, opts.MaxValueLength, out)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles calculation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// Document is the JSON or YAML rendering of a run.
type Document struct {
	Result     *calc.Result      `json:"result,omitempty" yaml:"result,omitempty"`
	Comparison []ComparisonEntry `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	Status     string            `json:"status,omitempty" yaml:"status,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
	ExitCode   int               `json:"exit_code" yaml:"exit_code"`
}

// ComparisonEntry is one calculator of a comparison.
type ComparisonEntry struct {
	Algorithm string        `json:"algorithm" yaml:"algorithm"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// StructuredPresenter renders runs as a single JSON or YAML document. The
// comparison table, when presented, is folded into the document.
type StructuredPresenter struct {
	Format     string
	comparison []ComparisonEntry
	status     string
}

var (
	_ orchestration.ResultPresenter = (*StructuredPresenter)(nil)
	_ orchestration.StatusPresenter = (*StructuredPresenter)(nil)
	_ orchestration.ErrorHandler    = (*StructuredPresenter)(nil)
)

// PresentComparisonTable records the comparison for the final document.
func (p *StructuredPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	p.comparison = make([]ComparisonEntry, len(results))
	for i, res := range results {
		p.comparison[i] = ComparisonEntry{Algorithm: res.Name, Duration: res.Duration}
		if res.Err != nil {
			p.comparison[i].Error = res.Err.Error()
		}
	}
}

// PresentStatus records the global status of a comparison for the document.
func (p *StructuredPresenter) PresentStatus(status string, _ io.Writer) {
	p.status = status
}

// PresentResult writes the document. opts is ignored: structured output
// always carries the full value.
func (p *StructuredPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, out io.Writer) {
	res := result.Result
	exit := apperrors.ExitSuccess
	if res.Check.Failed() {
		exit = apperrors.ExitErrorMismatch
	}
	p.write(Document{Result: &res, Comparison: p.comparison, Status: p.status, ExitCode: exit}, out)
}

// HandleError writes a document carrying the error and its exit code.
func (p *StructuredPresenter) HandleError(err error, _ time.Duration, out io.Writer) int {
	code := apperrors.ExitCode(err)
	doc := Document{Comparison: p.comparison, Status: p.status, ExitCode: code}
	if err != nil {
		doc.Error = err.Error()
	}
	p.write(doc, out)
	return code
}

func (p *StructuredPresenter) write(doc Document, out io.Writer) {
	b, err := MarshalResult(doc, p.Format)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	out.Write(b)
}
