package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qcalc/internal/ui"
)

// Style variables for the explorer, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle         lipgloss.Style
	focusedPanelStyle  lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	sectionTitleStyle  lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	successStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	warningStyle       lipgloss.Style
	infoStyle          lipgloss.Style
	selectedRowStyle   lipgloss.Style
	tableHeaderStyle   lipgloss.Style
	progressFullStyle  lipgloss.Style
	progressEmptyStyle lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
	overlayStyle       lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. It runs at
// package init, from Run after the theme is chosen and on theme changes.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Foreground(t.Text).
		Padding(0, 1)

	focusedPanelStyle = panelStyle.
		BorderForeground(t.Border)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	sectionTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	infoStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	selectedRowStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Underline(true)

	progressFullStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	progressEmptyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	cpuSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	memSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
}

// panelFor returns the focused or the plain panel style.
func panelFor(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return panelStyle
}
