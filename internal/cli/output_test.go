package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/config"
)

func TestFormatCall(t *testing.T) {
	t.Parallel()
	tests := []struct {
		res  calc.Result
		want string
	}{
		{calc.Result{Function: calc.QBinom, Args: []string{"4", "2"}}, "q_binomial(4, 2)"},
		{calc.Result{Function: calc.QInt, Args: []string{"3"}, Q: "2"}, "q_int(3; q = 2)"},
		{calc.Result{Function: calc.QJordan, Args: []string{"3", "2", "1"}}, "q_jordan([3,2,1])"},
		{calc.Result{Function: calc.QJordan, Args: []string{"[2,1]"}, Q: "p"}, "q_jordan([2,1]; q = p)"},
	}
	for _, tt := range tests {
		if got := FormatCall(tt.res); got != tt.want {
			t.Errorf("FormatCall() = %q, want %q", got, tt.want)
		}
	}
}

func TestMarshalResult(t *testing.T) {
	t.Parallel()
	res := binomialResult()
	res.Check = &calc.Check{Expected: "6", Actual: "6", OK: true}

	b, err := MarshalResult(res, config.FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("invalid JSON %s: %v", b, err)
	}
	if decoded["value"] != res.Value || decoded["function"] != "q_binomial" {
		t.Errorf("unexpected JSON document: %s", b)
	}
	if _, ok := decoded["Fingerprint"]; ok {
		t.Error("fingerprint must not be serialized")
	}

	b, err = MarshalResult(res, config.FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var doc struct {
		Value    string `yaml:"value"`
		Duration string `yaml:"duration"`
		Check    struct {
			OK bool `yaml:"ok"`
		} `yaml:"check"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		t.Fatalf("invalid YAML %s: %v", b, err)
	}
	if doc.Value != res.Value || doc.Duration != "3ms" || !doc.Check.OK {
		t.Errorf("unexpected YAML document:\n%s", b)
	}

	if _, err := MarshalResult(res, config.FormatText); err == nil {
		t.Error("text is not a structured format")
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		format     string
		contains   []string
	}{
		{"Text", filepath.Join(tmpDir, "result.txt"), config.FormatText, []string{"# Ring: Univariate", "# Algorithm: naive", "q_binomial(4, 2) =", "q^4 + q^3"}},
		{"JSON", filepath.Join(tmpDir, "result.json"), config.FormatJSON, []string{`"value": "q^4 + q^3 + 2*q^2 + q + 1"`}},
		{"YAML", filepath.Join(tmpDir, "result.yaml"), config.FormatYAML, []string{"value: q^4 + q^3 + 2*q^2 + q + 1"}},
		{"Nested directory", filepath.Join(tmpDir, "nested", "dir", "result.txt"), "", []string{"q_binomial(4, 2) ="}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WriteResultToFile(binomialResult(), OutputConfig{OutputFile: tc.outputFile, Format: tc.format})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			content, err := os.ReadFile(tc.outputFile)
			if err != nil {
				t.Fatalf("Failed to read output file: %v", err)
			}
			for _, s := range tc.contains {
				if !strings.Contains(string(content), s) {
					t.Errorf("file should contain %q:\n%s", s, content)
				}
			}
		})
	}

	t.Run("Empty output file (no write)", func(t *testing.T) {
		t.Parallel()
		if err := WriteResultToFile(binomialResult(), OutputConfig{}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, binomialResult())
	if buf.String() != "q^4 + q^3 + 2*q^2 + q + 1\n" {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("Quiet mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, binomialResult(), OutputConfig{Quiet: true}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != binomialResult().Value {
			t.Errorf("Quiet output should be the value only, got %q", buf.String())
		}
	})

	t.Run("JSON mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, binomialResult(), OutputConfig{Format: config.FormatJSON}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if !json.Valid(buf.Bytes()) {
			t.Errorf("JSON mode printed invalid JSON: %s", buf.String())
		}
	})

	t.Run("Normal mode with file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "test_output.txt")
		if err := DisplayResultWithConfig(&buf, binomialResult(), OutputConfig{OutputFile: outputFile}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		if !strings.Contains(buf.String(), "Result saved to") {
			t.Errorf("Should show file save message, got '%s'", buf.String())
		}
	})

	t.Run("Quiet mode with file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "quiet_output.txt")
		if err := DisplayResultWithConfig(&buf, binomialResult(), OutputConfig{OutputFile: outputFile, Quiet: true}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		if strings.Contains(buf.String(), "Result saved to") {
			t.Error("Quiet mode should not show file save message")
		}
	})
}
