package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/config"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/orchestration"
)

func newTestModel(t *testing.T, cfg config.AppConfig) Model {
	t.Helper()
	m := NewModel(context.Background(), orchestration.NewDefaultFactory(), cfg, "test")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestParseCall(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		fn   calc.Function
		args []string
	}{
		{"q_binomial 4 2", calc.QBinom, []string{"4", "2"}},
		{"q_jordan(3,2,1)", calc.QJordan, []string{"3", "2", "1"}},
		{"  q_int   5 ", calc.QInt, []string{"5"}},
		{"gaussian_binomial 3 1", calc.QBinom, []string{"3", "1"}},
	}
	for _, tt := range tests {
		fn, args, err := parseCall(tt.in)
		if err != nil {
			t.Errorf("parseCall(%q): %v", tt.in, err)
			continue
		}
		if fn != tt.fn || strings.Join(args, " ") != strings.Join(tt.args, " ") {
			t.Errorf("parseCall(%q) = %s %v, want %s %v", tt.in, fn, args, tt.fn, tt.args)
		}
	}

	if _, _, err := parseCall("   "); !errors.As(err, &apperrors.ValidationError{}) {
		t.Errorf("empty call: got %v, want a ValidationError", err)
	}
	if _, _, err := parseCall("q_euler 3"); apperrors.ExitCode(err) != apperrors.ExitErrorInvalidArgument {
		t.Errorf("unknown function: got %v", err)
	}
}

func TestNewModelPrefillsCall(t *testing.T) {
	m := NewModel(context.Background(), orchestration.NewDefaultFactory(),
		config.AppConfig{Function: "q_binomial", Args: []string{"4", "2"}, Q: "2", Algo: "naive"}, "test")

	if got := m.input.call.Value(); got != "q_binomial 4 2" {
		t.Errorf("call = %q", got)
	}
	if got := m.input.Q(); got != "2" {
		t.Errorf("q = %q", got)
	}
	if got := m.algorithms.Selected(); got != "naive" {
		t.Errorf("selected = %q, want naive", got)
	}
}

func TestView(t *testing.T) {
	m := NewModel(context.Background(), orchestration.NewDefaultFactory(), config.AppConfig{}, "test")
	if got := m.View(); got != "Initializing..." {
		t.Errorf("view before size = %q", got)
	}

	m = newTestModel(t, config.AppConfig{})
	view := m.View()
	for _, want := range []string{"qcalc explorer", "Input", "q-binomial algorithm", "cyclo_polynomial", "Result", "Resources"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.showHelp || !strings.Contains(m.View(), "q_jordan PARTITION") {
		t.Error("f1 should open the help overlay")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("esc should close the help overlay")
	}
}

func TestTypingLettersDoesNotTriggerShortcuts(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	for _, r := range "q_int 3" {
		m, _ = press(t, m, runes(string(r)))
	}
	if got := m.input.call.Value(); got != "q_int 3" {
		t.Errorf("call = %q, want %q", got, "q_int 3")
	}
	if m.verify {
		t.Error("typing v in a text field toggled verification")
	}
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	want := []section{sectionQ, sectionAlgorithms, sectionResults, sectionCall}
	for _, s := range want {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != s {
			t.Fatalf("focus = %d, want %d", m.focus, s)
		}
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != sectionResults || m.input.Focused() {
		t.Errorf("shift+tab: focus = %d, text field focused = %v", m.focus, m.input.Focused())
	}

	m, _ = press(t, m, runes("v"))
	if !m.verify {
		t.Error("v outside the text fields should toggle verification")
	}
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q outside the text fields should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestAlgorithmSelection(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.algorithms.Selected() != "auto" {
		t.Fatalf("initial selection = %q", m.algorithms.Selected())
	}
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.algorithms.Selected(); got != "cyclo_polynomial" {
		t.Errorf("selection = %q, want cyclo_polynomial", got)
	}
	for range 5 {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.algorithms.Selected(); got != "naive" {
		t.Errorf("selection should stop at the last algorithm, got %q", got)
	}
}

func TestRunInvalidCall(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.running {
		t.Error("an empty call must not start a batch")
	}
	if m.lastError == nil || !strings.Contains(m.statusLine(), "enter a function") {
		t.Errorf("status = %q", m.statusLine())
	}

	m.input.call.SetValue("q_int 3")
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyF5})
	if cmd != nil || m.lastError == nil {
		t.Error("comparison of a non-binomial function must be rejected")
	}
}

func TestRunCalculation(t *testing.T) {
	m := newTestModel(t, config.AppConfig{Verify: true})
	m.input.call.SetValue("q_binomial 4 2")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.running || m.generation != 1 {
		t.Fatalf("enter should start batch 1, running = %v generation = %d", m.running, m.generation)
	}
	if m.algorithms.rows["auto"].status != statusRunning {
		t.Error("auto should be running")
	}

	m, _ = press(t, m, ProgressMsg{CalculatorIndex: 0, Value: 0.5, AverageProgress: 0.5})
	if m.algorithms.rows["auto"].progress != 0.5 {
		t.Errorf("progress = %f", m.algorithms.rows["auto"].progress)
	}

	done, ok := cmd().(CalculationCompleteMsg)
	if !ok {
		t.Fatal("the batch command should end with CalculationCompleteMsg")
	}
	if done.ExitCode != apperrors.ExitSuccess || done.Generation != 1 {
		t.Errorf("completion = %+v", done)
	}

	res, err := calc.Evaluate(context.Background(), calc.Request{Function: "q_binomial", Args: []string{"4", "2"}, Verify: true})
	if err != nil {
		t.Fatal(err)
	}
	m, _ = press(t, m, FinalResultMsg{Result: orchestration.CalculationResult{Name: "auto", Result: res}})
	m, _ = press(t, m, done)
	if m.running || m.exitCode != apperrors.ExitSuccess {
		t.Errorf("running = %v exit = %d", m.running, m.exitCode)
	}
	final, ok := m.results.Final()
	if !ok || final.Value != "q^4 + q^3 + 2*q^2 + q + 1" {
		t.Errorf("final = %+v", final)
	}
	if m.algorithms.rows["auto"].status != statusComplete {
		t.Error("auto should be complete")
	}
	if m.metrics.lastAlloc == nil {
		t.Error("completion should record the allocation of the batch")
	}
	if !strings.Contains(m.results.content(), "6 = 6, consistent") {
		t.Errorf("results lack the q = 1 check:\n%s", m.results.content())
	}
}

func TestStaleCompletionIgnored(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m.input.call.SetValue("q_int 3")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.generation != 3 {
		t.Fatalf("generation = %d, want 3 after a restart", m.generation)
	}

	m, _ = press(t, m, CalculationCompleteMsg{ExitCode: apperrors.ExitErrorMismatch, Generation: 1})
	if !m.running || m.exitCode == apperrors.ExitErrorMismatch {
		t.Error("a superseded completion must be ignored")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.running || m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("esc should cancel the batch, running = %v exit = %d", m.running, m.exitCode)
	}
}

func TestComparisonAndErrors(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	results := []orchestration.CalculationResult{
		{Name: "naive", Result: calc.Result{Fingerprint: "a"}},
		{Name: "cyclo_generic", Result: calc.Result{Fingerprint: "b"}},
	}
	m.algorithms.StartBatch([]string{"naive", "cyclo_generic"})
	m, _ = press(t, m, ComparisonResultsMsg{Results: results})
	if !strings.Contains(m.results.content(), "MISMATCH") {
		t.Error("differing fingerprints should be flagged")
	}

	m, _ = press(t, m, ErrorMsg{Err: errors.New("boom")})
	if !strings.Contains(m.results.content(), "Error: boom") {
		t.Error("errors should be shown in the results panel")
	}
}

func TestResourceSamples(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m, _ = press(t, m, MemStatsMsg{HeapAlloc: 1 << 20, Goroutines: 3})
	m, _ = press(t, m, SysStatsMsg{CPUPercent: 10, MemPercent: 20})
	m, _ = press(t, m, CacheStatsMsg{Entries: 4, Hits: 2, Misses: 4})

	view := m.metrics.View()
	for _, want := range []string{"1.0 MB", "4 entries, 2 hits"} {
		if !strings.Contains(view, want) {
			t.Errorf("resources lack %q", want)
		}
	}

	_, cmd := press(t, m, TickMsg{})
	if cmd == nil {
		t.Error("a tick should schedule sampling and the next tick")
	}
}

func TestContextCancelledQuits(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	_, cmd := press(t, m, ContextCancelledMsg{Err: context.Canceled})
	if cmd == nil {
		t.Fatal("expected tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}
