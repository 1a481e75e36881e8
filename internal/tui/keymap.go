package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the explorer's key bindings. Letter aliases are only active
// when no text field has focus.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Run      key.Binding
	Compare  key.Binding
	Verify   key.Binding
	Full     key.Binding
	Theme    key.Binding
	Cancel   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/f1", "help"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c", "f5"),
			key.WithHelp("c/f5", "compare algorithms"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v", "f2"),
			key.WithHelp("v/f2", "toggle q = 1 check"),
		),
		Full: key.NewBinding(
			key.WithKeys("f", "f3"),
			key.WithHelp("f/f3", "toggle full value"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t", "f4"),
			key.WithHelp("t/f4", "cycle theme"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel / close help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll value up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll value down"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Next, k.Compare, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.Compare, k.Verify, k.Full},
		{k.Next, k.Prev, k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Theme, k.Cancel, k.Help, k.Quit},
	}
}

// isTextKey reports whether a key pressed in a text field is text rather
// than a shortcut.
func isTextKey(s string) bool {
	return len([]rune(s)) == 1
}
