package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/qcalc/internal/calc"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of dropping updates when the
// UI is slow to consume them.
const ProgressBufferMultiplier = 5

var tracer = otel.Tracer("github.com/agbru/qcalc/internal/orchestration")

var logger atomic.Pointer[zerolog.Logger]

// SetLogger sets the logger used for per-calculator debug events.
func SetLogger(l zerolog.Logger) { logger.Store(&l) }

func log() *zerolog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// ExecuteCalculations runs every calculator on req concurrently and
// collects their results in input order.
//
// A calculator failure is recorded in its CalculationResult and does not
// cancel the others. When ctx ends, calculators still running report the
// context error.
func ExecuteCalculations(ctx context.Context, calculators []Calculator, req calc.Request, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	ctx, span := tracer.Start(ctx, "orchestration.ExecuteCalculations", trace.WithAttributes(
		attribute.String("qcalc.function", req.Function),
		attribute.Int("qcalc.calculators", len(calculators)),
	))
	defer span.End()

	var g errgroup.Group
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, c := range calculators {
		g.Go(func() error {
			cctx, cspan := tracer.Start(ctx, "orchestration.Calculate", trace.WithAttributes(
				attribute.String("qcalc.calculator", c.Name()),
			))
			defer cspan.End()

			startTime := time.Now()
			res, err := c.Calculate(cctx, progressChan, i, req)
			results[i] = CalculationResult{
				Name: c.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			if err != nil {
				cspan.RecordError(err)
				cspan.SetStatus(codes.Error, err.Error())
			}
			log().Debug().
				Str("calculator", c.Name()).
				Dur("duration", results[i].Duration).
				Err(err).
				Msg("calculation finished")
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple calculators
// and generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful calculations by value fingerprint, and displays a comparative
// table. When two successful calculators disagree the error handler gets an
// apperrors.MismatchError and ExitErrorMismatch is returned; when none
// succeeded the error handler's code is returned.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValidResult == nil {
			firstValidResult = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if len(results) > 1 {
			presentStatus(presenter, opts, "Failure. No algorithm could complete the calculation.", out)
		}
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Fingerprint != firstValidResult.Result.Fingerprint {
			presentStatus(presenter, opts, "CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.", out)
			errHandler.HandleError(mismatchError(results), 0, out)
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		presentStatus(presenter, opts, "Success. All valid results are consistent.", out)
	}
	presenter.PresentResult(*firstValidResult, opts, out)
	if firstValidResult.Result.Check.Failed() {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// presentStatus hands the global status to a StatusPresenter, or prints it
// as a text line. Quiet runs get neither.
func presentStatus(presenter ResultPresenter, opts PresentationOptions, status string, out io.Writer) {
	if opts.Quiet {
		return
	}
	if sp, ok := presenter.(StatusPresenter); ok {
		sp.PresentStatus(status, out)
		return
	}
	fmt.Fprintf(out, "\nGlobal Status: %s\n", status)
}

func mismatchError(results []CalculationResult) error {
	var names []string
	for _, res := range results {
		if res.Err == nil {
			names = append(names, res.Name)
		}
	}
	return apperrors.MismatchError{Algorithms: names}
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
