package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/ui"
)

// renderHelpOverlay renders the help screen centered over the explorer.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("qcalc explorer - help"))
	b.WriteString("\n\n")

	b.WriteString(sectionTitleStyle.Render("Functions"))
	b.WriteString("\n")
	for _, fn := range calc.Functions() {
		fmt.Fprintf(&b, "  %s\n", valueStyle.Render(fn.Usage()))
	}
	b.WriteString("\n")

	b.WriteString(sectionTitleStyle.Render("Values of q"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  empty: polynomial in q   t: polynomial in t   sym:x   3/2   1+2I   (0.5+1i)   root:6"))
	b.WriteString("\n\n")

	b.WriteString(sectionTitleStyle.Render("Keys"))
	b.WriteString("\n")
	h := m.help
	h.ShowAll = true
	b.WriteString(h.View(m.keymap))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Letter shortcuts work outside the text fields. Theme: %s. Press ? or esc to close.",
		ui.GetCurrentTheme().Name)))

	overlay := overlayStyle.Width(min(90, max(m.width-4, 20))).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}
