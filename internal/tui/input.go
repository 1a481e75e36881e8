package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/qcalc/internal/calc"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

// InputModel holds the two text fields of the explorer: the call, such as
// "q_binomial 4 2", and the value of q.
type InputModel struct {
	call  textinput.Model
	q     textinput.Model
	width int
}

// NewInputModel creates the input panel with the call field focused.
func NewInputModel(q string) InputModel {
	call := textinput.New()
	call.Prompt = "call> "
	call.Placeholder = "q_binomial 4 2"
	call.CharLimit = 256
	call.Focus()

	qi := textinput.New()
	qi.Prompt = "q> "
	qi.Placeholder = "polynomial ring"
	qi.CharLimit = 128
	qi.SetValue(q)

	return InputModel{call: call, q: qi}
}

// SetWidth updates the available width.
func (m *InputModel) SetWidth(w int) {
	m.width = w
	fieldWidth := max((w-8)/2-8, 10)
	m.call.Width = fieldWidth
	m.q.Width = fieldWidth
}

// focus moves the cursor to the field owned by s and blurs the other one.
func (m *InputModel) focus(s section) tea.Cmd {
	m.call.Blur()
	m.q.Blur()
	switch s {
	case sectionCall:
		return m.call.Focus()
	case sectionQ:
		return m.q.Focus()
	}
	return nil
}

// Focused reports whether one of the text fields has the cursor.
func (m InputModel) Focused() bool {
	return m.call.Focused() || m.q.Focused()
}

// Update forwards a key to the focused field.
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.call.Focused():
		m.call, cmd = m.call.Update(msg)
	case m.q.Focused():
		m.q, cmd = m.q.Update(msg)
	}
	return m, cmd
}

// Q returns the trimmed value of q.
func (m InputModel) Q() string {
	return strings.TrimSpace(m.q.Value())
}

// View renders both fields side by side.
func (m InputModel) View(focused bool) string {
	body := sectionTitleStyle.Render("Input") + "\n" + m.call.View() + "    " + m.q.View()
	return panelFor(focused).Width(max(m.width-2, 0)).Render(body)
}

// parseCall splits a call such as "q_binomial 4 2" or "q_jordan(3,2,1)"
// into the function and its arguments.
func parseCall(s string) (calc.Function, []string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '(' || r == ')'
	})
	if len(fields) == 0 {
		return "", nil, apperrors.ValidationError{Field: "call", Message: "enter a function and its arguments, e.g. q_binomial 4 2"}
	}
	fn, err := calc.ParseFunction(fields[0])
	if err != nil {
		return "", nil, err
	}
	return fn, fields[1:], nil
}
