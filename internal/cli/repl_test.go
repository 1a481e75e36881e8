package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/qcalc/internal/orchestration"
)

func runREPL(t *testing.T, script string, cfg REPLConfig) string {
	t.Helper()
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	r := NewREPL(orchestration.NewDefaultFactory(), cfg)
	var out bytes.Buffer
	r.SetInput(strings.NewReader(script))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPLSession(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		script   string
		contains []string
	}{
		{"evaluate", "q_binomial 4 2\nexit\n", []string{"q_binomial(4, 2)", "q^4 + q^3 + 2*q^2 + q + 1", "Goodbye!"}},
		{"alias and calc", "calc factorial 3\n", []string{"q_factorial(3)", "q^3 + 2*q^2 + 2*q + 1"}},
		{"set q", "q 2\nq_int 3\n", []string{"q set to: ", "q_int(3; q = 2)", "7"}},
		{"jordan", "q_jordan 3 2 1\n", []string{"16*q^4 + 24*q^3 + 14*q^2 + 5*q + 1"}},
		{"qt catalan ignores q", "q 3\nqt_catalan_number 2\n", []string{"qt_catalan_number(2)", "q + t"}},
		{"verify", "verify\nq_catalan_number 3\n", []string{"Verification at q = 1: ", "5 = 5, consistent"}},
		{"algo", "algo naive\nq_binomial 6 3\n", []string{"Algorithm changed to: ", "naive"}},
		{"unknown algo", "algo fft\n", []string{"Unknown algorithm: fft", "Available algorithms"}},
		{"compare", "compare 8 3\n", []string{"Comparison for q_binomial(8, 3)", "cyclo_generic", "cyclo_polynomial", "naive", "✓"}},
		{"invalid argument", "q_factorial -1\n", []string{"Invalid argument", "nonnegative"}},
		{"unknown command", "frobnicate\n", []string{"Unknown command: frobnicate"}},
		{"list", "list\n", []string{"q_jordan", "cyclo_polynomial"}},
		{"status", "status\n", []string{"Current configuration", "q (polynomial ring)", "auto"}},
		{"eof without newline", "q_int 2", []string{"q + 1", "Goodbye!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, tt.script, REPLConfig{})
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("session output should contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestNewREPLDefaultAlgo(t *testing.T) {
	t.Parallel()
	r := NewREPL(orchestration.NewDefaultFactory(), REPLConfig{DefaultAlgo: orchestration.AllCalculators})
	if r.currentAlgo != "auto" {
		t.Errorf("currentAlgo = %q, want auto", r.currentAlgo)
	}
}
