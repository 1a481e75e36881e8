package cli

import (
	"fmt"
	"io"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/format"
	"github.com/agbru/qcalc/internal/ui"
)

// DisplayResult prints a result with its metadata. Values longer than
// maxLen are truncated unless verbose is set.
//
// Parameters:
//   - res: The result to display.
//   - verbose: Shows the full value and its length.
//   - maxLen: The truncation limit; 0 disables truncation.
//   - out: The writer for standard output.
func DisplayResult(res calc.Result, verbose bool, maxLen int, out io.Writer) {
	fmt.Fprintf(out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Ring:       %s%s%s\n", ui.ColorCyan(), res.Ring, ui.ColorReset())
	if res.Algorithm != "" {
		fmt.Fprintf(out, "  Algorithm:  %s%s%s\n", ui.ColorBlue(), res.Algorithm, ui.ColorReset())
	}
	fmt.Fprintf(out, "  Time:       %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(out, "  Terms:      %s%d%s\n", ui.ColorCyan(), format.CountTerms(res.Value), ui.ColorReset())
	if verbose {
		fmt.Fprintf(out, "  Length:     %s%s%s characters\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(res.Value))), ui.ColorReset())
	}
	if res.Check != nil {
		color := ui.ColorGreen()
		if res.Check.Failed() {
			color = ui.ColorRed()
		} else if res.Check.Skipped != "" {
			color = ui.ColorYellow()
		}
		fmt.Fprintf(out, "  At q = 1:   %s%s%s\n", color, checkSummary(res.Check), ui.ColorReset())
	}

	value := format.FormatNumberString(res.Value)
	truncated := false
	if !verbose {
		if short := format.TruncateValue(value, maxLen); short != value {
			value, truncated = short, true
		}
	}
	fmt.Fprintf(out, "\n%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), FormatCall(res), ui.ColorReset(), ui.ColorGreen(), value, ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "%s(truncated) Tip: use -v to display the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}
