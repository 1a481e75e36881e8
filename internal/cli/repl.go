package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/format"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/qanalog"
	"github.com/agbru/qcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the q-binomial algorithm used for calculations.
	DefaultAlgo string
	// Timeout is the maximum duration for each calculation.
	Timeout time.Duration
	// Q is the initial value of q; empty means the polynomial ring in q.
	Q string
	// Verify specializes every value to q = 1.
	Verify bool
	// MaxValueLength truncates long values; 0 disables it.
	MaxValueLength int
}

// REPL represents an interactive q-analogue calculator session.
type REPL struct {
	config      REPLConfig
	factory     orchestration.CalculatorFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: The calculators available to the session.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(factory orchestration.CalculatorFactory, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if currentAlgo == "" || currentAlgo == orchestration.AllCalculators {
		currentAlgo = qanalog.Auto.String()
	}

	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"q> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s       %sq-analogue Calculator - Interactive Mode%s           %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<function> <args>%s   - Evaluate, e.g. q_binomial 4 2 or q_jordan 3 2 1\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sq <value>%s           - Set q (empty resets to the polynomial ring)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s         - Change the q-binomial algorithm (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getAlgoList())
	fmt.Fprintf(r.out, "  %scompare <n> <k>%s     - Run every q-binomial algorithm and compare\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverify%s              - Toggle the q = 1 check\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s                - List functions and algorithms\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s              - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s         - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getAlgoList returns a comma-separated list of available algorithms.
func (r *REPL) getAlgoList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "q":
		r.cmdQ(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "verify":
		r.config.Verify = !r.config.Verify
		fmt.Fprintf(r.out, "Verification at q = 1: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verify), ui.ColorReset())
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case "calc", "c":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%sUsage: calc <function> <args>%s\n", ui.ColorRed(), ui.ColorReset())
			return true
		}
		r.calculate(args[0], args[1:])
	default:
		if _, err := calc.ParseFunction(cmd); err == nil {
			r.calculate(cmd, args)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdQ sets or resets q. The value is validated on the next calculation.
func (r *REPL) cmdQ(args []string) {
	r.config.Q = strings.Join(args, "")
	q := r.config.Q
	if q == "" {
		q = "q (polynomial ring)"
	}
	fmt.Fprintf(r.out, "q set to: %s%s%s\n", ui.ColorCyan(), q, ui.ColorReset())
}

// calculate evaluates one call with the current q and algorithm.
func (r *REPL) calculate(function string, args []string) {
	fn, err := calc.ParseFunction(function)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	algo := r.currentAlgo
	if fn != calc.QBinom {
		algo = qanalog.Auto.String()
	}
	c, err := r.factory.Get(algo)
	if err != nil {
		fmt.Fprintf(r.out, "%sAlgorithm not found: %s%s\n", ui.ColorRed(), algo, ui.ColorReset())
		return
	}

	q := r.config.Q
	if !fn.TakesQ() {
		q = ""
	}
	req := calc.Request{Function: string(fn), Args: args, Q: q, Verify: r.config.Verify}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	res, err := c.Calculate(ctx, nil, 0, req)
	if err != nil {
		CLIResultPresenter{}.HandleError(err, 0, r.out)
		return
	}
	DisplayResult(res, false, r.config.MaxValueLength, r.out)
	fmt.Fprintln(r.out)
}

// cmdAlgo handles the "algo" command.
func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.getAlgoList())
		return
	}

	c, err := r.factory.Get(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.getAlgoList())
		return
	}

	r.currentAlgo = c.Name()
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), c.Name(), ui.ColorReset())
}

// cmdCompare runs every concrete q-binomial algorithm on (n, k) and checks
// that they agree.
func (r *REPL) cmdCompare(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: compare <n> <k>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	calculators := orchestration.GetCalculatorsToRun(orchestration.AllCalculators, r.factory)
	req := calc.Request{Function: string(calc.QBinom), Args: args, Q: r.config.Q}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteCalculations(ctx, calculators, req, orchestration.NullProgressReporter{}, r.out)

	fmt.Fprintf(r.out, "\n%sComparison for %s(%s):%s\n", ui.ColorBold(), calc.QBinom, strings.Join(args, ", "), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var reference string
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-20s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(),
				ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		if reference == "" {
			reference = res.Result.Fingerprint
		}

		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if res.Result.Fingerprint != reference {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-20s%s: %s%12s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(),
			status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sFunctions:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, fn := range calc.Functions() {
		fmt.Fprintf(r.out, "  %s%-18s%s %s\n", ui.ColorYellow(), fn, ui.ColorReset(), fn.Usage())
	}
	fmt.Fprintf(r.out, "\n%sq-binomial algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	q := r.config.Q
	if q == "" {
		q = "q (polynomial ring)"
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  q:          %s%s%s\n", ui.ColorCyan(), q, ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:  %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Verify:     %s%s%s\n", ui.ColorCyan(), onOff(r.config.Verify), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
