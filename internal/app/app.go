// Package app wires the configuration, the calculators and the delivery
// surfaces (command line, REPL, TUI, HTTP server, calibration) together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/calibration"
	"github.com/agbru/qcalc/internal/cli"
	"github.com/agbru/qcalc/internal/config"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/logging"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/qanalog"
	"github.com/agbru/qcalc/internal/server"
	"github.com/agbru/qcalc/internal/tui"
	"github.com/agbru/qcalc/internal/ui"
)

// Application represents the qcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   orchestration.CalculatorFactory
	ErrWriter io.Writer

	logger *logging.ZerologAdapter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f orchestration.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = orchestration.NewDefaultFactory()
	}

	programName := "qcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		if !IsHelpError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.setupLogging()
	ui.InitTheme(false)

	switch {
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.Server:
		return a.runServer(ctx)
	}
	return a.runCalculate(ctx, out)
}

// setupLogging builds the process logger from -log-level and hands it to
// the packages that log. The TUI owns the terminal, so it gets no logs.
func (a *Application) setupLogging() {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	w := io.Writer(zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: true})
	if a.Config.TUI {
		w, level = io.Discard, zerolog.Disabled
	}
	zerolog.SetGlobalLevel(level)

	a.logger = logging.NewLevelLogger(w, "qcalc", level)
	orchestration.SetLogger(logging.NewLevelLogger(w, "orchestration", level).Zerolog())
	calibration.SetLogger(logging.NewLevelLogger(w, "calibration", level).Zerolog())
	qanalog.DefaultJordanCache().SetLogger(logging.NewLevelLogger(w, "jordan-cache", level).Zerolog())
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List(), calc.Names()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration times the q-binomial algorithms and records the profile.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return calibration.RunCalibration(ctx, out, calibration.Options{
		ProfilePath: calibration.GetDefaultProfilePath(),
	})
}

// runTUI launches the interactive explorer.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return tui.Run(ctx, a.Factory, a.Config, Version)
}

// runREPL starts the interactive prompt on stdin.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo:    a.Config.Algo,
		Timeout:        a.Config.Timeout,
		Q:              a.Config.Q,
		Verify:         a.Config.Verify,
		MaxValueLength: a.Config.MaxValueLength,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until ctx is canceled or a signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	security := server.DefaultSecurityConfig()
	security.MaxNValue = a.Config.ServerMaxN
	srv := server.New(server.Config{
		Port:     a.Config.Port,
		Workers:  a.Config.Workers,
		Timeout:  a.Config.Timeout,
		Security: security,
	}, a.Factory, a.logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		a.logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
