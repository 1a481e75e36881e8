// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the QCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"PORT", []string{"port"}, intSetter(func(c *AppConfig) *int { return &c.Port })},
	{"MAX_N", []string{"max-n"}, intSetter(func(c *AppConfig) *int { return &c.ServerMaxN })},
	{"WORKERS", []string{"workers"}, intSetter(func(c *AppConfig) *int { return &c.Workers })},
	{"MAX_LENGTH", []string{"max-length"}, intSetter(func(c *AppConfig) *int { return &c.MaxValueLength })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = parsed
		return nil
	}},

	// String overrides
	{"Q", []string{"q"}, func(c *AppConfig, v string) error { c.Q = v; return nil }},
	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) error { c.Algo = v; return nil }},
	{"FORMAT", []string{"format"}, func(c *AppConfig, v string) error { c.Format = strings.ToLower(v); return nil }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error { c.OutputFile = v; return nil }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error { c.LogLevel = v; return nil }},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"quiet"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERIFY", []string{"verify"}, boolSetter(func(c *AppConfig) *bool { return &c.Verify })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
}

func intSetter(field func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = parsed
		return nil
	}
}

func boolSetter(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, ok := parseBoolEnv(v)
		if !ok {
			return strconv.ErrSyntax
		}
		*field(c) = parsed
		return nil
	}
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func parseBoolEnv(val string) (value, ok bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > File > Defaults.
//
// Supported environment variables (all prefixed with QCALC_):
//   - PORT, MAX_N, WORKERS, MAX_LENGTH, TIMEOUT, Q, ALGO, FORMAT, OUTPUT,
//     LOG_LEVEL, VERBOSE, QUIET, VERIFY, TUI
//   - CONFIG is read by ParseConfig before the file layer.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if err := o.apply(config, val); err != nil {
			return apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, o.envKey, val, err)
		}
	}
	return nil
}
