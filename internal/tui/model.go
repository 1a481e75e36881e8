package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/config"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/metrics"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/qanalog"
	"github.com/agbru/qcalc/internal/sysmon"
	"github.com/agbru/qcalc/internal/ui"
)

// section identifies the focused part of the explorer.
type section int

const (
	sectionCall section = iota
	sectionQ
	sectionAlgorithms
	sectionResults
	sectionCount
)

// Layout constants for the explorer.
const (
	headerHeight    = 1
	inputHeight     = 4
	footerHeight    = 2
	minBodyHeight   = 8
	sidePanelWidth  = 48
	minSplitWidth   = 100
	tickInterval    = 500 * time.Millisecond
	calcTimeoutSlop = time.Second
)

// ExecutionState holds the execution-related fields of a session.
type ExecutionState struct {
	cancel     context.CancelFunc
	generation uint64
	running    bool
	started    time.Time
	progress   float64
	exitCode   int
	before     metrics.MemorySnapshot
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the height left for the algorithm, result and
// resource panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-inputHeight-footerHeight, minBodyHeight)
}

// split reports whether the side column fits next to the results.
func (l LayoutManager) split() bool {
	return l.width >= minSplitWidth
}

func (l LayoutManager) mainWidth() int {
	if l.split() {
		return l.width - sidePanelWidth
	}
	return l.width
}

// Model is the root bubbletea model of the explorer.
type Model struct {
	header     HeaderModel
	input      InputModel
	algorithms AlgorithmsModel
	results    ResultsModel
	metrics    MetricsModel
	help       help.Model
	keymap     KeyMap

	ExecutionState
	LayoutManager

	focus     section
	showHelp  bool
	verify    bool
	lastError error

	parentCtx context.Context
	factory   orchestration.CalculatorFactory
	config    config.AppConfig
	ref       *programRef
	collector *metrics.MemoryCollector
}

// NewModel creates the explorer. The initial q, algorithm and verification
// come from cfg.
func NewModel(parentCtx context.Context, factory orchestration.CalculatorFactory, cfg config.AppConfig, version string) Model {
	selected := cfg.Algo
	if selected == config.AllAlgorithms {
		selected = qanalog.Auto.String()
	}
	m := Model{
		header:     NewHeaderModel(version),
		input:      NewInputModel(cfg.Q),
		algorithms: NewAlgorithmsModel(factory.List(), selected),
		results:    NewResultsModel(cfg.MaxValueLength),
		metrics:    NewMetricsModel(),
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		ExecutionState: ExecutionState{
			exitCode: apperrors.ExitSuccess,
		},
		verify:    cfg.Verify,
		parentCtx: parentCtx,
		factory:   factory,
		config:    cfg,
		ref:       &programRef{},
		collector: metrics.NewMemoryCollector(),
	}
	if cfg.Function != "" {
		m.input.call.SetValue(strings.TrimSpace(cfg.Function + " " + strings.Join(cfg.Args, " ")))
	}
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		m.sampleCmd(),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if m.running {
			m.algorithms.UpdateProgress(msg)
			m.progress = msg.AverageProgress
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.results.SetComparison(msg.Results)
		m.algorithms.Finish(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.results.SetFinal(msg.Result)
		m.algorithms.Finish([]orchestration.CalculationResult{msg.Result})
		return m, nil

	case ErrorMsg:
		m.results.SetError(msg.Err, msg.Duration)
		m.algorithms.Fail()
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // superseded batch
		}
		m.running = false
		m.exitCode = msg.ExitCode
		m.progress = 1
		m.metrics.SetLastAllocation(msg.Allocation)
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		return m, m.sampleCmd()

	case TickMsg:
		return m, tea.Batch(m.sampleCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case CacheStatsMsg:
		m.metrics.UpdateCacheStats(msg)
		return m, nil

	case ContextCancelledMsg:
		m.stop()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keymap.Help), key.Matches(msg, m.keymap.Cancel):
			m.showHelp = false
		case msg.String() == "ctrl+c":
			m.stop()
			return m, tea.Quit
		}
		return m, nil
	}

	// Inside a text field, printable keys are text.
	if m.input.Focused() && isTextKey(msg.String()) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keymap.Next):
		return m, m.setFocus((m.focus + 1) % sectionCount)

	case key.Matches(msg, m.keymap.Prev):
		return m, m.setFocus((m.focus + sectionCount - 1) % sectionCount)

	case key.Matches(msg, m.keymap.Run):
		return m.startCalculation(false)

	case key.Matches(msg, m.keymap.Compare):
		return m.startCalculation(true)

	case key.Matches(msg, m.keymap.Verify):
		m.verify = !m.verify
		return m, nil

	case key.Matches(msg, m.keymap.Full):
		m.results.ToggleFull()
		return m, nil

	case key.Matches(msg, m.keymap.Theme):
		ui.NextTheme()
		initTUIStyles()
		m.results.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Cancel):
		if m.running {
			m.stop()
			m.algorithms.Fail()
			m.lastError = apperrors.WrapError(context.Canceled, "calculation canceled")
		}
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		return m.handleScroll(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleScroll moves the algorithm selection or scrolls the value.
func (m Model) handleScroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == sectionResults {
		var cmd tea.Cmd
		m.results.viewport, cmd = m.results.viewport.Update(msg)
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.algorithms.MoveUp()
	case key.Matches(msg, m.keymap.Down):
		m.algorithms.MoveDown()
	default:
		var cmd tea.Cmd
		m.results.viewport, cmd = m.results.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(s section) tea.Cmd {
	m.focus = s
	return m.input.focus(s)
}

// stop cancels the running batch, if any, and discards its completion.
func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.running {
		m.generation++
		m.running = false
		m.exitCode = apperrors.ExitErrorCanceled
	}
}

// startCalculation validates the input and launches a batch. A comparison
// runs every concrete q-binomial algorithm and is only offered for
// q_binomial; other functions always use auto.
func (m Model) startCalculation(compare bool) (tea.Model, tea.Cmd) {
	fn, args, err := parseCall(m.input.call.Value())
	if err != nil {
		m.lastError = err
		return m, nil
	}
	if compare && fn != calc.QBinom {
		m.lastError = apperrors.ValidationError{Field: "call", Message: "comparison applies only to " + string(calc.QBinom)}
		return m, nil
	}

	var calculators []orchestration.Calculator
	switch {
	case compare:
		calculators = orchestration.GetCalculatorsToRun(orchestration.AllCalculators, m.factory)
	case fn == calc.QBinom:
		calculators = orchestration.GetCalculatorsToRun(m.algorithms.Selected(), m.factory)
	default:
		calculators = orchestration.GetCalculatorsToRun(qanalog.Auto.String(), m.factory)
	}
	if len(calculators) == 0 {
		m.lastError = apperrors.NewConfigError("no calculator available for %q", m.algorithms.Selected())
		return m, nil
	}

	q := m.input.Q()
	if !fn.TakesQ() {
		q = ""
	}
	req := calc.Request{Function: string(fn), Args: args, Q: q, Verify: m.verify}

	m.stop()
	m.generation++
	timeout := m.config.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(m.parentCtx, timeout+calcTimeoutSlop)
	m.cancel = cancel
	m.running = true
	m.started = time.Now()
	m.progress = 0
	m.lastError = nil
	m.before = m.collector.Snapshot()

	names := make([]string, len(calculators))
	for i, c := range calculators {
		names[i] = c.Name()
	}
	m.algorithms.StartBatch(names)
	m.results.Reset()

	opts := orchestration.PresentationOptions{
		Verbose:        m.config.Verbose,
		MaxValueLength: m.config.MaxValueLength,
	}
	return m, startCalculationCmd(m.ref, ctx, calculators, req, opts, m.generation, m.collector, m.before)
}

// View renders the whole explorer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.header.View()
	input := m.input.View(m.focus == sectionCall || m.focus == sectionQ)

	fn, _, err := parseCall(m.input.call.Value())
	algos := m.algorithms.View(m.focus == sectionAlgorithms, err == nil && fn == calc.QBinom)
	results := m.results.View(m.focus == sectionResults)

	var body string
	if m.split() {
		left := lipgloss.JoinVertical(lipgloss.Left, algos, results)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, m.metrics.View())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, algos, results)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, input, body, m.statusLine(), m.help.View(m.keymap))
}

// statusLine reports the state of the current batch.
func (m Model) statusLine() string {
	verify := "off"
	if m.verify {
		verify = "on"
	}
	prefix := labelStyle.Render("q = 1 check: " + verify + "  ")
	switch {
	case m.lastError != nil:
		return prefix + errorStyle.Render(m.lastError.Error())
	case m.running:
		return prefix + infoStyle.Render("running "+formatPercent(m.progress)+" "+
			time.Since(m.started).Round(time.Millisecond).String())
	case m.exitCode == apperrors.ExitErrorMismatch:
		return prefix + errorStyle.Render("mismatch detected")
	case m.exitCode == apperrors.ExitSuccess:
		return prefix + successStyle.Render("ready")
	default:
		return prefix + warningStyle.Render("last run failed")
	}
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.help.Width = m.width

	mainWidth := m.mainWidth()
	m.algorithms.SetWidth(mainWidth)
	algoHeight := len(m.algorithms.names) + 4
	m.results.SetSize(mainWidth, max(m.bodyHeight()-algoHeight, 5))
	m.metrics.SetSize(sidePanelWidth, m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory orchestration.CalculatorFactory, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		m.stop()
		if err == nil {
			return m.exitCode
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd returns a tea.Cmd that launches the orchestration.
func startCalculationCmd(ref *programRef, ctx context.Context, calculators []orchestration.Calculator, req calc.Request,
	opts orchestration.PresentationOptions, gen uint64, collector *metrics.MemoryCollector, before metrics.MemorySnapshot,
) tea.Cmd {
	return func() tea.Msg {
		progressReporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteCalculations(ctx, calculators, req, progressReporter, io.Discard)
		exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, io.Discard)

		return CalculationCompleteMsg{
			ExitCode:   exitCode,
			Generation: gen,
			Allocation: collector.Snapshot().Since(before),
		}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleCmd samples the runtime, the system and the q-Jordan memo table.
func (m Model) sampleCmd() tea.Cmd {
	collector := m.collector
	return tea.Batch(
		func() tea.Msg { return MemStatsMsg(collector.Snapshot()) },
		func() tea.Msg { return SysStatsMsg(sysmon.Sample()) },
		func() tea.Msg {
			c := qanalog.DefaultJordanCache()
			hits, misses := c.Stats()
			return CacheStatsMsg{Entries: c.Len(), Hits: hits, Misses: misses}
		},
	)
}

// watchContextCmd waits for the session context to end.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
