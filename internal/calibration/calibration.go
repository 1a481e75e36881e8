// Package calibration times the naive and the cyclotomic q-binomial
// algorithms over polynomial q and reports where one overtakes the other.
// It only reports: the selection thresholds in qanalog stay fixed.
package calibration

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/qcalc/internal/algebra"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/qanalog"
)

var logger atomic.Pointer[zerolog.Logger]

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) { logger.Store(&l) }

func log() *zerolog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// Options configures a calibration run.
type Options struct {
	// Sizes are the values of n; nil means GenerateSizes.
	Sizes []int
	// Divisors select k = n/d for each row; nil means DefaultDivisors.
	Divisors []int
	// Repeats is the number of timings per point; the fastest one counts.
	Repeats int
	// ProfilePath records the run; empty disables the profile.
	ProfilePath string
}

func (o Options) withDefaults() Options {
	if o.Sizes == nil {
		o.Sizes = GenerateSizes()
	}
	if o.Divisors == nil {
		o.Divisors = DefaultDivisors
	}
	if o.Repeats <= 0 {
		o.Repeats = 3
	}
	return o
}

// Measurement is the timing of both algorithms on one point.
type Measurement struct {
	Point
	Naive time.Duration `json:"naive_ns"`
	Cyclo time.Duration `json:"cyclo_ns"`
}

// CycloFaster reports whether the cyclotomic path won on this point.
func (m Measurement) CycloFaster() bool { return m.Cyclo < m.Naive }

// Crossover is the smallest n of a row from which the cyclotomic path wins
// on every larger measured n. N is zero when it never takes over.
type Crossover struct {
	Divisor int `json:"divisor"`
	N       int `json:"n"`
}

// Report is the outcome of a calibration run.
type Report struct {
	Measurements []Measurement
	Crossovers   []Crossover
	Elapsed      time.Duration
}

// Calibrate times every grid point. It stops at the first point that
// starts after ctx is done and returns the context error.
func Calibrate(ctx context.Context, opts Options) (Report, error) {
	opts = opts.withDefaults()
	start := time.Now()
	grid := GenerateGrid(opts.Sizes, opts.Divisors)
	report := Report{Measurements: make([]Measurement, 0, len(grid))}

	for _, p := range grid {
		if err := ctx.Err(); err != nil {
			return report, apperrors.WrapError(err, "calibration interrupted at n=%d, k=%d", p.N, p.K)
		}
		m, err := measure(p, opts.Repeats)
		if err != nil {
			return report, err
		}
		log().Debug().
			Int("n", p.N).
			Int("k", p.K).
			Dur("naive", m.Naive).
			Dur("cyclo", m.Cyclo).
			Msg("calibration point")
		report.Measurements = append(report.Measurements, m)
	}

	report.Crossovers = findCrossovers(report.Measurements, opts.Divisors)
	report.Elapsed = time.Since(start)
	return report, nil
}

func measure(p Point, repeats int) (Measurement, error) {
	m := Measurement{Point: p}
	var err error
	if m.Naive, err = fastest(qanalog.Naive, p, repeats); err != nil {
		return m, err
	}
	if m.Cyclo, err = fastest(qanalog.CycloPolynomial, p, repeats); err != nil {
		return m, err
	}
	return m, nil
}

func fastest(alg qanalog.Algorithm, p Point, repeats int) (time.Duration, error) {
	best := time.Duration(-1)
	for range repeats {
		start := time.Now()
		if _, _, err := qanalog.QBinomialWith(algebra.ZZq, alg, p.N, p.K); err != nil {
			return 0, fmt.Errorf("%s on n=%d, k=%d: %w", alg, p.N, p.K, err)
		}
		if d := time.Since(start); best < 0 || d < best {
			best = d
		}
	}
	return best, nil
}

// findCrossovers scans each row from the largest n down and keeps the
// smallest n of the trailing run won by the cyclotomic path.
func findCrossovers(ms []Measurement, divisors []int) []Crossover {
	out := make([]Crossover, 0, len(divisors))
	for _, d := range divisors {
		var row []Measurement
		for _, m := range ms {
			if m.Divisor == d {
				row = append(row, m)
			}
		}
		c := Crossover{Divisor: d}
		for i := len(row) - 1; i >= 0 && row[i].CycloFaster(); i-- {
			c.N = row[i].N
		}
		out = append(out, c)
	}
	return out
}

// RunCalibration runs a calibration, prints the table and the crossovers
// to out, and records them in the profile at opts.ProfilePath. It returns
// the process exit code.
func RunCalibration(ctx context.Context, out io.Writer, opts Options) int {
	var previous *CalibrationProfile
	if opts.ProfilePath != "" {
		if p, loaded := LoadOrCreateProfile(opts.ProfilePath); loaded && p.IsValid() {
			previous = p
		}
	}

	printCalibrationHeader(out, opts.withDefaults())
	report, err := Calibrate(ctx, opts)
	if err != nil {
		return apperrors.HandleCalculationError(err, report.Elapsed, out, nil)
	}
	printCalibrationResults(out, report)
	printCrossovers(out, report.Crossovers, previous)

	if opts.ProfilePath != "" {
		profile := NewProfile()
		profile.Crossovers = report.Crossovers
		profile.GridPoints = len(report.Measurements)
		profile.CalibrationTime = report.Elapsed.Round(time.Millisecond).String()
		if err := profile.SaveProfile(opts.ProfilePath); err != nil {
			log().Error().Err(err).Str("path", opts.ProfilePath).Msg("cannot save the calibration profile")
			fmt.Fprintf(out, "Warning: profile not saved: %v\n", err)
		} else {
			fmt.Fprintf(out, "Profile saved to %s\n", opts.ProfilePath)
		}
	}
	return apperrors.ExitSuccess
}
