package tui

import (
	"time"

	"github.com/agbru/qcalc/internal/metrics"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/sysmon"
)

// TickMsg drives the periodic resource sampling.
type TickMsg time.Time

// ProgressMsg is one aggregated progress update of the running batch.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the sorted results of a comparison.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the result retained for display.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
}

// ErrorMsg reports a batch in which no calculator succeeded.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// CalculationCompleteMsg ends a batch. Generation discards the completion
// of a batch that was superseded by a newer one.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
	Allocation metrics.Allocation
}

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg metrics.MemorySnapshot

// SysStatsMsg is a system-wide resource sample.
type SysStatsMsg sysmon.Stats

// CacheStatsMsg is a sample of the shared q-Jordan memo table.
type CacheStatsMsg struct {
	Entries      int
	Hits, Misses uint64
}

// ContextCancelledMsg reports that the session context ended.
type ContextCancelledMsg struct {
	Err error
}
