// Package config parses the command line, the QCALC_ environment and an
// optional TOML file into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/logging"
)

// EnvPrefix prefixes every environment variable read by ParseConfig.
const EnvPrefix = "QCALC_"

// Defaults.
const (
	DefaultTimeout        = 5 * time.Minute
	DefaultAlgo           = "auto"
	DefaultFormat         = FormatText
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultMaxValueLength = 4096
	// DefaultServerMaxN bounds the size argument of /compute requests.
	DefaultServerMaxN = 200
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AllAlgorithms runs every binomial algorithm and compares the results.
const AllAlgorithms = "all"

var (
	outputFormats    = []string{FormatText, FormatJSON, FormatYAML}
	completionShells = []string{"bash", "zsh", "fish"}
)

// AppConfig holds the resolved configuration of one run.
type AppConfig struct {
	// Function and Args are the positional arguments.
	Function string
	Args     []string

	Q          string
	Algo       string
	Timeout    time.Duration
	Format     string
	OutputFile string
	Verbose    bool
	Quiet      bool
	Verify     bool

	// MaxValueLength truncates long values in text output; 0 disables it.
	MaxValueLength int

	REPL      bool
	TUI       bool
	Calibrate bool
	Server    bool
	Port      int
	// ServerMaxN bounds request sizes in server mode; 0 disables the bound.
	ServerMaxN int
	// Workers bounds concurrent computations in server mode.
	Workers int

	LogLevel    string
	Completion  string
	ConfigFile  string
	ShowVersion bool
}

// Interactive reports whether the run needs no positional function.
func (c AppConfig) Interactive() bool {
	return c.REPL || c.TUI || c.Server || c.Calibrate || c.Completion != "" || c.ShowVersion
}

// ParseConfig resolves the configuration from args, the environment and the
// optional TOML file. Priority is flags, then environment, then file, then
// defaults. Usage and flag errors are written to errorOutput.
//
// Parameters:
//   - programName: The name shown in usage messages.
//   - args: The command-line arguments without the program name.
//   - errorOutput: The writer for usage and flag errors.
//   - availableAlgos: The registered algorithm names accepted by -algo.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errorOutput io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Q, "q", "", "value of q: a variable name, sym:NAME, a number, a Gaussian rational, (a+bi) or root:M")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("q-binomial algorithm: %s or %s", strings.Join(availableAlgos, ", "), AllAlgorithms))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum computation time")
	fs.StringVar(&cfg.Format, "format", DefaultFormat, "output format: text, json or yaml")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "show the full value and details")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the value")
	fs.BoolVar(&cfg.Verify, "verify", false, "specialize to q = 1 and compare with the classical number")
	fs.IntVar(&cfg.MaxValueLength, "max-length", DefaultMaxValueLength, "truncate values longer than this in text output (0 disables)")
	fs.BoolVar(&cfg.REPL, "repl", false, "start the interactive prompt")
	fs.BoolVar(&cfg.TUI, "tui", false, "start the terminal explorer")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "time the q-binomial algorithms and report the crossover")
	fs.BoolVar(&cfg.Server, "server", false, "serve /compute, /health and /metrics over HTTP")
	fs.IntVar(&cfg.Port, "port", DefaultPort, "HTTP port in server mode")
	fs.IntVar(&cfg.ServerMaxN, "max-n", DefaultServerMaxN, "largest size argument accepted in server mode (0 disables)")
	fs.IntVar(&cfg.Workers, "workers", 0, "concurrent computations in server mode (0 picks from the CPU count)")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for bash, zsh or fish")
	fs.StringVar(&cfg.ConfigFile, "config", "", "TOML configuration file")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information")

	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [flags] FUNCTION [ARGS...]\n\n", programName)
		fmt.Fprintf(errorOutput, "Functions: q_int N, q_factorial N, q_binomial N K, q_catalan_number N,\n")
		fmt.Fprintf(errorOutput, "           qt_catalan_number N, q_jordan PARTITION\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Function, cfg.Args = rest[0], rest[1:]
	}

	if !isFlagSet(fs, "config") {
		if v := os.Getenv(EnvPrefix + "CONFIG"); v != "" {
			cfg.ConfigFile = v
		}
	}
	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return cfg, err
		}
		if err := file.apply(&cfg, fs); err != nil {
			return cfg, err
		}
	}
	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return cfg, err
	}
	cfg = ApplyAdaptiveDefaults(cfg)

	if err := cfg.Validate(availableAlgos); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Algo != AllAlgorithms && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s, %s)", c.Algo, strings.Join(availableAlgos, ", "), AllAlgorithms)
	}
	if !slices.Contains(outputFormats, c.Format) {
		return apperrors.NewConfigError("unknown output format %q (available: %s)", c.Format, strings.Join(outputFormats, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Port < 0 || c.Port > 65535 {
		return apperrors.NewConfigError("port %d is out of range", c.Port)
	}
	if c.MaxValueLength < 0 || c.ServerMaxN < 0 || c.Workers < 0 {
		return apperrors.NewConfigError("max-length, max-n and workers must not be negative")
	}
	if c.Completion != "" && !slices.Contains(completionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for completion (available: %s)", c.Completion, strings.Join(completionShells, ", "))
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	modes := 0
	for _, on := range []bool{c.REPL, c.TUI, c.Server, c.Calibrate} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-repl, -tui, -server and -calibrate are mutually exclusive")
	}
	if c.Function == "" && !c.Interactive() {
		return apperrors.NewConfigError("missing FUNCTION argument")
	}
	return nil
}
