package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/qcalc/internal/config"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the call, the timeout and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	q := cfg.Q
	if q == "" {
		q = "q (polynomial)"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s%s(%s)%s at q = %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Function, strings.Join(cfg.Args, ", "), ui.ColorReset(),
		ui.ColorCyan(), q, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.Verify {
		fmt.Fprintf(out, "Verification: the value is specialized to q = 1 and compared with the classical number.\n")
	}
}

// PrintExecutionMode displays the execution mode (single algorithm vs comparison).
//
// Parameters:
//   - calculators: The calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []orchestration.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel comparison of all q-binomial algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
