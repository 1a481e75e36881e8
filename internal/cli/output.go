// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatCall].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/config"
	"github.com/agbru/qcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Format is one of config.FormatText, FormatJSON or FormatYAML.
	Format string
	// Quiet mode prints the value only.
	Quiet bool
	// Verbose shows the full value and its details.
	Verbose bool
	// MaxValueLength truncates long values in text output; 0 disables it.
	MaxValueLength int
}

// FormatCall renders the call of a result, e.g. "q_binomial(4, 2; q = 2)".
func FormatCall(res calc.Result) string {
	args := strings.Join(res.Args, ", ")
	if res.Function == calc.QJordan {
		args = "[" + strings.Join(res.Args, ",") + "]"
		if len(res.Args) == 1 {
			args = res.Args[0]
		}
	}
	if res.Q != "" {
		return fmt.Sprintf("%s(%s; q = %s)", res.Function, args, res.Q)
	}
	return fmt.Sprintf("%s(%s)", res.Function, args)
}

// MarshalResult encodes a result as JSON or YAML.
func MarshalResult(v any, format string) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case config.FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported structured format %q", format)
	}
}

// WriteResultToFile writes a result to cfg.OutputFile in cfg.Format,
// creating missing directories.
//
// Parameters:
//   - res: The result to write.
//   - cfg: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(res calc.Result, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if isStructured(cfg.Format) {
		b, err := MarshalResult(res, cfg.Format)
		if err != nil {
			return err
		}
		_, err = file.Write(b)
		return err
	}

	fmt.Fprintf(file, "# q-analogue calculation result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Ring: %s\n", res.Ring)
	if res.Algorithm != "" {
		fmt.Fprintf(file, "# Algorithm: %s\n", res.Algorithm)
	}
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	if res.Check != nil {
		fmt.Fprintf(file, "# Check at q = 1: %s\n", checkSummary(res.Check))
	}
	fmt.Fprintf(file, "\n%s =\n%s\n", FormatCall(res), res.Value)
	return nil
}

// FormatQuietResult returns the bare value for scripting.
func FormatQuietResult(res calc.Result) string {
	return res.Value
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, res calc.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResultWithConfig displays a result with the given output configuration
// and saves it when cfg.OutputFile is set.
//
// Returns:
//   - error: An error if encoding or file output fails.
func DisplayResultWithConfig(out io.Writer, res calc.Result, cfg OutputConfig) error {
	switch {
	case isStructured(cfg.Format):
		b, err := MarshalResult(res, cfg.Format)
		if err != nil {
			return err
		}
		if _, err := out.Write(b); err != nil {
			return err
		}
	case cfg.Quiet:
		DisplayQuietResult(out, res)
	default:
		DisplayResult(res, cfg.Verbose, cfg.MaxValueLength, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(res, cfg); err != nil {
			return err
		}
		if !cfg.Quiet && !isStructured(cfg.Format) {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

func isStructured(format string) bool {
	return format == config.FormatJSON || format == config.FormatYAML
}

func checkSummary(c *calc.Check) string {
	switch {
	case c.Skipped != "":
		return "skipped (" + c.Skipped + ")"
	case c.OK:
		return fmt.Sprintf("%s = %s, consistent", c.Actual, c.Expected)
	default:
		return fmt.Sprintf("%s != %s, MISMATCH", c.Actual, c.Expected)
	}
}
