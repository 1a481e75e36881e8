// Package ui holds the color themes shared by the command-line output and
// the terminal explorer. Terminal output reads ANSI codes through the Color*
// accessors; the explorer reads the lipgloss palette of GetCurrentTUITheme.
package ui
