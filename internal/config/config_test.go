package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

var testAlgos = []string{"auto", "cyclo_generic", "cyclo_polynomial", "naive"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var errOut bytes.Buffer
	return ParseConfig("qcalc", args, &errOut, testAlgos)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qcalc.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parse(t, "q_binomial", "4", "2")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Function != "q_binomial" || len(cfg.Args) != 2 || cfg.Args[0] != "4" || cfg.Args[1] != "2" {
		t.Errorf("positional = %q %q", cfg.Function, cfg.Args)
	}
	if cfg.Algo != DefaultAlgo || cfg.Timeout != DefaultTimeout || cfg.Format != FormatText {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Port != DefaultPort || cfg.ServerMaxN != DefaultServerMaxN {
		t.Errorf("unexpected server defaults: port=%d max-n=%d", cfg.Port, cfg.ServerMaxN)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want an adaptive value >= 1", cfg.Workers)
	}
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parse(t, "-q", "2", "-algo", "naive", "-timeout", "3s", "-format", "json", "-o", "out.json", "-v", "-verify", "q_int", "5")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Q != "2" || cfg.Algo != "naive" || cfg.Timeout != 3*time.Second || cfg.Format != FormatJSON {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.OutputFile != "out.json" || !cfg.Verbose || !cfg.Verify {
		t.Errorf("aliases not applied: %+v", cfg)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("QCALC_ALGO", "cyclo_generic")
	t.Setenv("QCALC_TIMEOUT", "10s")
	t.Setenv("QCALC_VERIFY", "yes")
	t.Setenv("QCALC_Q", "p")

	cfg, err := parse(t, "-q", "x", "q_factorial", "3")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Algo != "cyclo_generic" || cfg.Timeout != 10*time.Second || !cfg.Verify {
		t.Errorf("environment not applied: %+v", cfg)
	}
	if cfg.Q != "x" {
		t.Errorf("Q = %q, the flag should win over QCALC_Q", cfg.Q)
	}
}

func TestParseConfigEnvInvalid(t *testing.T) {
	t.Setenv("QCALC_PORT", "eighty")
	_, err := parse(t, "q_int", "3")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestParseConfigFile(t *testing.T) {
	path := writeConfig(t, `
q = "p"
algo = "naive"
timeout = "45s"
format = "yaml"
verify = true

[server]
port = 9090
max_n = 64
workers = 3
`)
	t.Setenv("QCALC_FORMAT", "json")

	cfg, err := parse(t, "-config", path, "-port", "7070", "q_int", "3")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Q != "p" || cfg.Algo != "naive" || cfg.Timeout != 45*time.Second || !cfg.Verify {
		t.Errorf("file not applied: %+v", cfg)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, the environment should win over the file", cfg.Format)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, the flag should win over the file", cfg.Port)
	}
	if cfg.ServerMaxN != 64 || cfg.Workers != 3 {
		t.Errorf("server table not applied: max-n=%d workers=%d", cfg.ServerMaxN, cfg.Workers)
	}
}

func TestParseConfigFileFromEnv(t *testing.T) {
	t.Setenv("QCALC_CONFIG", writeConfig(t, `algo = "cyclo_polynomial"`))
	cfg, err := parse(t, "q_binomial", "6", "3")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Algo != "cyclo_polynomial" {
		t.Errorf("Algo = %q, want cyclo_polynomial", cfg.Algo)
	}
}

func TestParseConfigFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `colour = "red"`},
		{"bad duration", `timeout = "soon"`},
		{"syntax", `algo = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := parse(t, "-config", path, "q_int", "3")
			if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
				t.Errorf("err = %v, want a config error", err)
			}
		})
	}

	if _, err := parse(t, "-config", filepath.Join(t.TempDir(), "missing.toml"), "q_int", "3"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestParseConfigHelp(t *testing.T) {
	var errOut bytes.Buffer
	_, err := ParseConfig("qcalc", []string{"-h"}, &errOut, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !bytes.Contains(errOut.Bytes(), []byte("Usage: qcalc [flags] FUNCTION")) {
		t.Errorf("usage not printed:\n%s", errOut.String())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{
		Function: "q_int",
		Algo:     "auto",
		Timeout:  time.Second,
		Format:   FormatText,
		LogLevel: "info",
		Port:     8080,
	}
	if err := valid.Validate(testAlgos); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"unknown algorithm", func(c *AppConfig) { c.Algo = "karatsuba" }},
		{"unknown format", func(c *AppConfig) { c.Format = "xml" }},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }},
		{"port range", func(c *AppConfig) { c.Port = 70000 }},
		{"negative max-n", func(c *AppConfig) { c.ServerMaxN = -1 }},
		{"unknown shell", func(c *AppConfig) { c.Completion = "powershell" }},
		{"quiet and verbose", func(c *AppConfig) { c.Quiet, c.Verbose = true, true }},
		{"two modes", func(c *AppConfig) { c.REPL, c.Server = true, true }},
		{"no function", func(c *AppConfig) { c.Function = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)
			err := c.Validate(testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Validate() = %v, want ConfigError", err)
			}
		})
	}

	all := valid
	all.Algo = AllAlgorithms
	if err := all.Validate(testAlgos); err != nil {
		t.Errorf("-algo all rejected: %v", err)
	}
	server := valid
	server.Function, server.Server = "", true
	if err := server.Validate(testAlgos); err != nil {
		t.Errorf("server mode without function rejected: %v", err)
	}
}

func TestEstimateWorkers(t *testing.T) {
	t.Parallel()
	if w := EstimateWorkers(); w < 1 {
		t.Errorf("EstimateWorkers() = %d, want >= 1", w)
	}
	cfg := ApplyAdaptiveDefaults(AppConfig{Workers: 7})
	if cfg.Workers != 7 {
		t.Errorf("explicit Workers overwritten: %d", cfg.Workers)
	}
}
