package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qcalc/internal/format"
	"github.com/agbru/qcalc/internal/orchestration"
)

// algoStatus is the state of one calculator in the current batch.
type algoStatus int

const (
	statusIdle algoStatus = iota
	statusRunning
	statusComplete
	statusError
)

// Column widths for the algorithm table (shared between header and rows).
const (
	colWidthName     = 18
	colWidthProgress = 20
	colWidthDur      = 10
	colWidthStatus   = 5
)

type algoRow struct {
	progress float64
	duration time.Duration
	status   algoStatus
}

// AlgorithmsModel lists the registered q-binomial algorithms, holds the
// selection and tracks the calculators of the running batch.
type AlgorithmsModel struct {
	names  []string
	rows   map[string]*algoRow
	batch  []string
	cursor int
	width  int
}

// NewAlgorithmsModel selects selected when it is one of names.
func NewAlgorithmsModel(names []string, selected string) AlgorithmsModel {
	m := AlgorithmsModel{names: names, rows: make(map[string]*algoRow, len(names))}
	for i, n := range names {
		m.rows[n] = &algoRow{}
		if n == selected {
			m.cursor = i
		}
	}
	return m
}

// SetWidth updates the available width.
func (m *AlgorithmsModel) SetWidth(w int) {
	m.width = w
}

// Selected returns the highlighted algorithm name.
func (m AlgorithmsModel) Selected() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.cursor]
}

// MoveUp and MoveDown move the selection.
func (m *AlgorithmsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *AlgorithmsModel) MoveDown() {
	if m.cursor < len(m.names)-1 {
		m.cursor++
	}
}

// StartBatch clears every row and marks the batch calculators as running.
// batch is indexed like the calculator indices of progress updates.
func (m *AlgorithmsModel) StartBatch(batch []string) {
	m.batch = batch
	for _, r := range m.rows {
		*r = algoRow{}
	}
	for _, n := range batch {
		if r, ok := m.rows[n]; ok {
			r.status = statusRunning
		}
	}
}

// UpdateProgress applies a progress update of the running batch.
func (m *AlgorithmsModel) UpdateProgress(msg ProgressMsg) {
	if msg.CalculatorIndex < 0 || msg.CalculatorIndex >= len(m.batch) {
		return
	}
	if r, ok := m.rows[m.batch[msg.CalculatorIndex]]; ok && r.status == statusRunning {
		r.progress = msg.Value
	}
}

// Finish records the outcome of each calculator.
func (m *AlgorithmsModel) Finish(results []orchestration.CalculationResult) {
	for _, res := range results {
		r, ok := m.rows[res.Name]
		if !ok {
			continue
		}
		r.duration = res.Duration
		if res.Err != nil {
			r.status = statusError
			continue
		}
		r.status = statusComplete
		r.progress = 1
	}
}

// Fail marks every calculator still running as failed.
func (m *AlgorithmsModel) Fail() {
	for _, r := range m.rows {
		if r.status == statusRunning {
			r.status = statusError
		}
	}
}

// View renders the algorithm table.
func (m AlgorithmsModel) View(focused bool, enabled bool) string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("q-binomial algorithm"))
	if !enabled {
		b.WriteString(labelStyle.Render("  (auto for this function)"))
	}
	b.WriteString("\n")

	colName := lipgloss.NewStyle().Width(colWidthName)
	colDur := lipgloss.NewStyle().Width(colWidthDur).Align(lipgloss.Right)
	colStatus := lipgloss.NewStyle().Width(colWidthStatus).Align(lipgloss.Center)

	b.WriteString(tableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		"  ",
		colName.Render("Algorithm"),
		" ",
		lipgloss.NewStyle().Width(colWidthProgress).Render("Progress"),
		" ",
		colDur.Render("Duration"),
		" ",
		colStatus.Render("State"),
	)))

	for i, name := range m.names {
		r := m.rows[name]
		marker := "  "
		nameStyle := colName
		if i == m.cursor {
			marker = "> "
			nameStyle = nameStyle.Inherit(selectedRowStyle)
		}

		dur := "-"
		switch r.status {
		case statusRunning:
			dur = "..."
		case statusComplete, statusError:
			dur = format.FormatExecutionDuration(r.duration)
		}

		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			nameStyle.Render(name),
			" ",
			renderProgressBar(r.progress, colWidthProgress),
			" ",
			colDur.Render(dur),
			" ",
			statusLabel(colStatus, r.status),
		))
	}

	return panelFor(focused).Width(max(m.width-2, 0)).Render(b.String())
}

func statusLabel(col lipgloss.Style, s algoStatus) string {
	switch s {
	case statusRunning:
		return col.Inherit(infoStyle).Render("RUN")
	case statusComplete:
		return col.Inherit(successStyle).Render("OK")
	case statusError:
		return col.Inherit(errorStyle).Render("ERR")
	default:
		return col.Inherit(labelStyle).Render("-")
	}
}

// renderProgressBar renders a progress bar with exact width.
func renderProgressBar(progress float64, width int) string {
	filled := min(max(int(progress*float64(width)), 0), width)
	return progressFullStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// formatPercent renders a progress fraction as a percentage.
func formatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
