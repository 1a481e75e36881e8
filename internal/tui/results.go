package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/cli"
	"github.com/agbru/qcalc/internal/format"
	"github.com/agbru/qcalc/internal/orchestration"
)

// ResultsModel shows the outcome of the last batch in a scrollable
// viewport: the comparison table, the retained value and its q = 1 check,
// or the error.
type ResultsModel struct {
	viewport   viewport.Model
	comparison []orchestration.CalculationResult
	final      *orchestration.CalculationResult
	err        error
	errAfter   time.Duration
	showFull   bool
	maxLen     int
	width      int
	height     int
}

// NewResultsModel creates an empty results panel. maxLen truncates values
// unless the full view is on; 0 disables truncation.
func NewResultsModel(maxLen int) ResultsModel {
	m := ResultsModel{viewport: viewport.New(0, 0), maxLen: maxLen}
	m.refresh()
	return m
}

// SetSize updates dimensions.
func (m *ResultsModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.viewport.Width = max(w-4, 0)
	m.viewport.Height = max(h-3, 1)
	m.refresh()
}

// Reset clears the previous batch.
func (m *ResultsModel) Reset() {
	m.comparison = nil
	m.final = nil
	m.err = nil
	m.refresh()
	m.viewport.GotoTop()
}

// SetComparison stores the sorted results of a comparison.
func (m *ResultsModel) SetComparison(results []orchestration.CalculationResult) {
	m.comparison = results
	m.refresh()
}

// SetFinal stores the retained result.
func (m *ResultsModel) SetFinal(res orchestration.CalculationResult) {
	m.final = &res
	m.refresh()
}

// SetError stores the error of a batch in which nothing succeeded.
func (m *ResultsModel) SetError(err error, d time.Duration) {
	m.err, m.errAfter = err, d
	m.refresh()
}

// ToggleFull switches between the truncated and the full value.
func (m *ResultsModel) ToggleFull() {
	m.showFull = !m.showFull
	m.refresh()
}

// Final returns the retained result, if any.
func (m ResultsModel) Final() (calc.Result, bool) {
	if m.final == nil {
		return calc.Result{}, false
	}
	return m.final.Result, true
}

func (m *ResultsModel) refresh() {
	m.viewport.SetContent(m.content())
}

func (m ResultsModel) content() string {
	var b strings.Builder
	if len(m.comparison) > 1 {
		m.writeComparison(&b)
	}
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		if m.errAfter > 0 {
			b.WriteString(labelStyle.Render(" after " + format.FormatExecutionDuration(m.errAfter)))
		}
	case m.final != nil:
		m.writeFinal(&b, m.final.Result)
	case len(m.comparison) == 0:
		b.WriteString(labelStyle.Render("No results yet. Type a call and press enter, or c to compare algorithms."))
	}
	return b.String()
}

func (m ResultsModel) writeComparison(b *strings.Builder) {
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-18s %10s  %s", "Algorithm", "Duration", "Status")))
	b.WriteString("\n")

	reference := ""
	for _, r := range m.comparison {
		if r.Err == nil {
			reference = r.Result.Fingerprint
			break
		}
	}
	consistent := true
	for _, r := range m.comparison {
		status := successStyle.Render("OK")
		switch {
		case r.Err != nil:
			status = errorStyle.Render("Error: " + r.Err.Error())
		case r.Result.Fingerprint != reference:
			status = errorStyle.Render("MISMATCH")
			consistent = false
		}
		fmt.Fprintf(b, "%-18s %10s  %s\n", r.Name, format.FormatExecutionDuration(r.Duration), status)
	}
	if consistent {
		b.WriteString(successStyle.Render("All valid results are consistent."))
	} else {
		b.WriteString(errorStyle.Render("Inconsistency detected between the algorithms."))
	}
	b.WriteString("\n\n")
}

func (m ResultsModel) writeFinal(b *strings.Builder, res calc.Result) {
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Ring:     "), valueStyle.Render(res.Ring))
	if res.Algorithm != "" {
		fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Algorithm:"), valueStyle.Render(res.Algorithm))
	}
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Time:     "), valueStyle.Render(format.FormatExecutionDuration(res.Duration)))
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Terms:    "), valueStyle.Render(fmt.Sprint(format.CountTerms(res.Value))))
	if c := res.Check; c != nil {
		style := successStyle
		if c.Failed() {
			style = errorStyle
		} else if c.Skipped != "" {
			style = warningStyle
		}
		fmt.Fprintf(b, "%s %s\n", labelStyle.Render("At q = 1: "), style.Render(checkText(c)))
	}

	value := format.FormatNumberString(res.Value)
	if !m.showFull {
		if short := format.TruncateValue(value, m.maxLen); short != value {
			value = short + warningStyle.Render("  (f shows the full value)")
		}
	}
	fmt.Fprintf(b, "\n%s =\n%s", infoStyle.Render(cli.FormatCall(res)), valueStyle.Render(value))
}

func checkText(c *calc.Check) string {
	switch {
	case c.Skipped != "":
		return "skipped (" + c.Skipped + ")"
	case c.OK:
		return fmt.Sprintf("%s = %s, consistent", c.Actual, c.Expected)
	default:
		return fmt.Sprintf("%s != %s, MISMATCH", c.Actual, c.Expected)
	}
}

// View renders the results panel.
func (m ResultsModel) View(focused bool) string {
	title := sectionTitleStyle.Render("Result")
	if pct := m.viewport.ScrollPercent(); m.viewport.TotalLineCount() > m.viewport.Height {
		title += labelStyle.Render(" " + formatPercent(pct))
	}
	return panelFor(focused).Width(max(m.width-2, 0)).Render(title + "\n" + m.viewport.View())
}
