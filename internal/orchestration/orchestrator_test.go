package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/qcalc/internal/calc"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

// MockResultPresenter records what it was asked to present.
type MockResultPresenter struct {
	mu        sync.Mutex
	tables    int
	presented []CalculationResult
	errs      []error
}

func (m *MockResultPresenter) PresentComparisonTable(results []CalculationResult, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables++
}

func (m *MockResultPresenter) PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presented = append(m.presented, result)
}

func (m *MockResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
	return apperrors.ExitCode(err)
}

// statusRecorder is a presenter that takes the global status itself.
type statusRecorder struct {
	MockResultPresenter
	statuses []string
}

func (s *statusRecorder) PresentStatus(status string, out io.Writer) {
	s.statuses = append(s.statuses, status)
}

// stubCalculator returns a fixed value or error after an optional delay.
type stubCalculator struct {
	name  string
	value string
	err   error
	delay time.Duration
}

func (s *stubCalculator) Name() string { return s.name }

func (s *stubCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, idx int, req calc.Request) (calc.Result, error) {
	sendProgress(progressChan, idx, 0)
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return calc.Result{}, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return calc.Result{}, s.err
	}
	sendProgress(progressChan, idx, 1)
	return calc.Result{Value: s.value, Fingerprint: s.value}, nil
}

func TestExecuteCalculations(t *testing.T) {
	t.Parallel()
	calculators := []Calculator{
		&stubCalculator{name: "a", value: "q + 1", delay: 5 * time.Millisecond},
		&stubCalculator{name: "b", err: errors.New("mock error")},
		&stubCalculator{name: "c", value: "q + 1"},
	}

	results := ExecuteCalculations(context.Background(), calculators, calc.Request{}, NullProgressReporter{}, io.Discard)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].Name != want {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, want)
		}
	}
	if results[0].Err != nil || results[0].Result.Value != "q + 1" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("expected the second calculator to fail")
	}
	if results[0].Duration < 5*time.Millisecond {
		t.Errorf("Duration = %v, want >= 5ms", results[0].Duration)
	}
}

func TestExecuteCalculationsProgress(t *testing.T) {
	t.Parallel()
	var (
		mu      sync.Mutex
		updates []ProgressUpdate
	)
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, out io.Writer) {
		defer wg.Done()
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})
	calculators := []Calculator{&stubCalculator{name: "a", value: "1"}, &stubCalculator{name: "b", value: "1"}}
	ExecuteCalculations(context.Background(), calculators, calc.Request{}, reporter, io.Discard)

	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 4 {
		t.Fatalf("got %d updates, want 4", len(updates))
	}
	agg := NewProgressAggregator(2)
	var last AggregatedProgress
	for _, u := range updates {
		last = agg.Update(u)
	}
	if agg.CalculateAverage() != 1 {
		t.Errorf("final average = %f, want 1 (last %+v)", agg.CalculateAverage(), last)
	}
}

func TestExecuteCalculationsNoDeadlock(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		calculators []Calculator
		cancelAfter time.Duration
	}{
		{"all instant", []Calculator{&stubCalculator{name: "a"}, &stubCalculator{name: "b"}, &stubCalculator{name: "c"}}, 0},
		{"mixed with errors", []Calculator{&stubCalculator{name: "ok"}, &stubCalculator{name: "err", err: errors.New("boom")}}, 0},
		{"canceled while slow", []Calculator{
			&stubCalculator{name: "slow1", delay: time.Minute},
			&stubCalculator{name: "slow2", delay: time.Minute},
		}, 20 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelAfter > 0 {
				time.AfterFunc(tt.cancelAfter, cancel)
			}

			done := make(chan []CalculationResult)
			go func() {
				done <- ExecuteCalculations(ctx, tt.calculators, calc.Request{}, NullProgressReporter{}, io.Discard)
			}()

			select {
			case results := <-done:
				if tt.cancelAfter > 0 {
					for _, r := range results {
						if !errors.Is(r.Err, context.Canceled) {
							t.Errorf("%s: expected context.Canceled, got %v", r.Name, r.Err)
						}
					}
				}
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteCalculations did not complete within timeout")
			}
		})
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	ok := func(name, fp string) CalculationResult {
		return CalculationResult{Name: name, Result: calc.Result{Value: fp, Fingerprint: fp}, Duration: time.Millisecond}
	}
	failed := func(name string, err error) CalculationResult {
		return CalculationResult{Name: name, Duration: time.Millisecond, Err: err}
	}

	tests := []struct {
		name       string
		results    []CalculationResult
		wantStatus int
		wantTable  bool
		wantOutput string
	}{
		{"single success", []CalculationResult{ok("naive", "x")}, apperrors.ExitSuccess, false, ""},
		{"all consistent", []CalculationResult{ok("a", "x"), ok("b", "x")}, apperrors.ExitSuccess, true, "All valid results are consistent"},
		{"mismatch", []CalculationResult{ok("a", "x"), ok("b", "y")}, apperrors.ExitErrorMismatch, true, "CRITICAL ERROR"},
		{"all failure", []CalculationResult{failed("a", errors.New("fail")), failed("b", errors.New("fail"))}, apperrors.ExitErrorGeneric, true, "No algorithm could complete"},
		{"invalid argument", []CalculationResult{failed("a", apperrors.NewInvalidArgument("n must be nonnegative"))}, apperrors.ExitErrorInvalidArgument, false, ""},
		{"mixed success and failure", []CalculationResult{failed("b", errors.New("fail")), ok("a", "x")}, apperrors.ExitSuccess, true, ""},
		{"failed verification", []CalculationResult{{
			Name:   "auto",
			Result: calc.Result{Value: "x", Check: &calc.Check{Expected: "2", Actual: "3"}},
		}}, apperrors.ExitErrorMismatch, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &MockResultPresenter{}
			var out strings.Builder
			status := AnalyzeComparisonResults(tt.results, PresentationOptions{}, presenter, presenter, &out)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if got := presenter.tables > 0; got != tt.wantTable {
				t.Errorf("comparison table presented = %v, want %v", got, tt.wantTable)
			}
			if tt.wantOutput != "" && !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("output %q does not contain %q", out.String(), tt.wantOutput)
			}
			if status == apperrors.ExitSuccess && len(presenter.presented) != 1 {
				t.Errorf("PresentResult called %d times, want 1", len(presenter.presented))
			}
		})
	}

	t.Run("mismatch reaches the error handler", func(t *testing.T) {
		t.Parallel()
		presenter := &MockResultPresenter{}
		AnalyzeComparisonResults([]CalculationResult{ok("a", "x"), ok("b", "y")}, PresentationOptions{}, presenter, presenter, io.Discard)
		var mismatch apperrors.MismatchError
		if len(presenter.errs) != 1 || !errors.As(presenter.errs[0], &mismatch) {
			t.Fatalf("errors handled = %v, want one MismatchError", presenter.errs)
		}
		if len(mismatch.Algorithms) != 2 {
			t.Errorf("algorithms = %v", mismatch.Algorithms)
		}
	})

	t.Run("status presenter owns the status", func(t *testing.T) {
		t.Parallel()
		for _, results := range [][]CalculationResult{
			{ok("a", "x"), ok("b", "x")},
			{ok("a", "x"), ok("b", "y")},
			{failed("a", errors.New("fail")), failed("b", errors.New("fail"))},
		} {
			presenter := &statusRecorder{}
			var out strings.Builder
			AnalyzeComparisonResults(results, PresentationOptions{}, presenter, presenter, &out)
			if out.Len() != 0 {
				t.Errorf("text written to out: %q", out.String())
			}
			if len(presenter.statuses) != 1 {
				t.Errorf("statuses = %v, want one", presenter.statuses)
			}
		}
	})

	t.Run("quiet drops the status", func(t *testing.T) {
		t.Parallel()
		presenter := &statusRecorder{}
		var out strings.Builder
		AnalyzeComparisonResults([]CalculationResult{ok("a", "x"), ok("b", "x")}, PresentationOptions{Quiet: true}, presenter, presenter, &out)
		if out.Len() != 0 || len(presenter.statuses) != 0 {
			t.Errorf("out = %q, statuses = %v", out.String(), presenter.statuses)
		}
	})

	t.Run("successful results sort first", func(t *testing.T) {
		t.Parallel()
		results := []CalculationResult{failed("z", errors.New("fail")), ok("a", "x")}
		AnalyzeComparisonResults(results, PresentationOptions{}, &MockResultPresenter{}, &MockResultPresenter{}, io.Discard)
		if results[0].Name != "a" {
			t.Errorf("results[0] = %q, want the successful one", results[0].Name)
		}
	})
}

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil || NewProgressAggregator(-1) != nil {
		t.Error("expected nil aggregator for a non-positive count")
	}
	agg := NewProgressAggregator(3)
	if agg.NumCalculators() != 3 || !agg.IsMultiCalculator() {
		t.Errorf("unexpected aggregator state: %d calculators", agg.NumCalculators())
	}
	if NewProgressAggregator(1).IsMultiCalculator() {
		t.Error("a single calculator is not multi")
	}
	if ap := agg.Update(ProgressUpdate{CalculatorIndex: 0, Value: 0.6}); ap.AverageProgress < 0.19 || ap.AverageProgress > 0.21 {
		t.Errorf("AverageProgress = %f, want 0.2", ap.AverageProgress)
	}
	if eta := NewProgressAggregator(1).GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}
}
