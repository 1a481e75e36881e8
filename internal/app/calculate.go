package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/cli"
	"github.com/agbru/qcalc/internal/config"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/logging"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	fn, err := calc.ParseFunction(a.Config.Function)
	if err != nil {
		return a.handleError(err, out)
	}

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.algorithmFor(fn), a.Factory)
	if len(calculatorsToRun) == 0 {
		return a.handleError(apperrors.NewConfigError("no calculator registered for %q", a.Config.Algo), out)
	}

	structured := a.Config.Format == config.FormatJSON || a.Config.Format == config.FormatYAML
	if !a.Config.Quiet && !structured {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet || structured {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	req := calc.Request{
		Function: a.Config.Function,
		Args:     a.Config.Args,
		Q:        a.Config.Q,
		Verify:   a.Config.Verify,
	}
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, req, progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile:     a.Config.OutputFile,
		Format:         a.Config.Format,
		Quiet:          a.Config.Quiet,
		Verbose:        a.Config.Verbose,
		MaxValueLength: a.Config.MaxValueLength,
	}
	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// algorithmFor returns the algorithm selection for fn. Only q_binomial has
// several evaluation paths; a comparison of anything else runs once.
func (a *Application) algorithmFor(fn calc.Function) string {
	if a.Config.Algo == config.AllAlgorithms && fn != calc.QBinom {
		if a.logger != nil {
			a.logger.Info("comparison applies to q_binomial only, running once",
				logging.String("function", string(fn)))
		}
		return ""
	}
	return a.Config.Algo
}

func (a *Application) handleError(err error, out io.Writer) int {
	if a.Config.Format == config.FormatJSON || a.Config.Format == config.FormatYAML {
		p := &cli.StructuredPresenter{Format: a.Config.Format}
		return p.HandleError(err, 0, out)
	}
	return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	presOpts := orchestration.PresentationOptions{
		Verbose:        outputCfg.Verbose,
		Quiet:          outputCfg.Quiet,
		MaxValueLength: outputCfg.MaxValueLength,
	}

	var exitCode int
	switch {
	case outputCfg.Format == config.FormatJSON || outputCfg.Format == config.FormatYAML:
		p := &cli.StructuredPresenter{Format: outputCfg.Format}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, p, p, out)
	case outputCfg.Quiet:
		p := quietPresenter{}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, p, p, out)
	default:
		p := cli.CLIResultPresenter{}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, p, p, out)
	}

	bestResult := findBestResult(results)
	if bestResult == nil || exitCode != apperrors.ExitSuccess {
		return exitCode
	}
	if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" && !outputCfg.Quiet && outputCfg.Format == config.FormatText {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// quietPresenter prints the bare value and drops the comparison table.
type quietPresenter struct {
	cli.CLIResultPresenter
}

func (quietPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

// findBestResult returns the fastest successful result, or nil.
func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
