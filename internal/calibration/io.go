package calibration

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/agbru/qcalc/internal/format"
	"github.com/agbru/qcalc/internal/qanalog"
	"github.com/agbru/qcalc/internal/ui"
)

// printCalibrationHeader announces the grid about to be timed.
func printCalibrationHeader(out io.Writer, opts Options) {
	fmt.Fprintf(out, "%sCalibrating%s %s vs %s over polynomial q: %d sizes x %d rows, best of %d\n",
		ui.ColorBold(), ui.ColorReset(), qanalog.Naive, qanalog.CycloPolynomial,
		len(opts.Sizes), len(opts.Divisors), opts.Repeats)
}

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, report Report) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sn%s\t%sk%s\t%snaive%s\t%scyclo_polynomial%s\t%sfaster%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())
	for _, m := range report.Measurements {
		winner := fmt.Sprintf("%s%s%s", ui.ColorCyan(), qanalog.Naive, ui.ColorReset())
		if m.CycloFaster() {
			winner = fmt.Sprintf("%s%s%s", ui.ColorGreen(), qanalog.CycloPolynomial, ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %d\t%d\t%s\t%s\t%s\n", m.N, m.K, durationLabel(m.Naive), durationLabel(m.Cyclo), winner)
	}
	tw.Flush()
	fmt.Fprintf(out, "Elapsed: %s\n", format.FormatExecutionDuration(report.Elapsed))
}

// printCrossovers prints the observed crossover of each row next to the
// fixed selection rule and, when available, the previous profile.
func printCrossovers(out io.Writer, crossovers []Crossover, previous *CalibrationProfile) {
	fmt.Fprintf(out, "\n%sObserved crossover%s (auto uses %s when n <= %d or k <= n/%g):\n",
		ui.ColorBold(), ui.ColorReset(), qanalog.Naive, qanalog.NaiveMaxN, qanalog.NaiveKRatio)
	for _, c := range crossovers {
		line := fmt.Sprintf("  k = n/%d: %s%s%s", c.Divisor, ui.ColorYellow(), crossoverLabel(c), ui.ColorReset())
		if prev, ok := previousCrossover(previous, c.Divisor); ok {
			line += fmt.Sprintf(" (previous run: %s)", crossoverLabel(prev))
		}
		fmt.Fprintln(out, line)
	}
}

func previousCrossover(p *CalibrationProfile, divisor int) (Crossover, bool) {
	if p == nil {
		return Crossover{}, false
	}
	for _, c := range p.Crossovers {
		if c.Divisor == divisor {
			return c, true
		}
	}
	return Crossover{}, false
}

func crossoverLabel(c Crossover) string {
	if c.N == 0 {
		return "none in range"
	}
	return fmt.Sprintf("n >= %d", c.N)
}

func durationLabel(d time.Duration) string {
	if d < time.Microsecond {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}
