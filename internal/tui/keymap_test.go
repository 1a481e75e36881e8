package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Next", km.Next},
		{"Prev", km.Prev},
		{"Run", km.Run},
		{"Compare", km.Compare},
		{"Verify", km.Verify},
		{"Full", km.Full},
		{"Theme", km.Theme},
		{"Cancel", km.Cancel},
		{"Up", km.Up},
		{"Down", km.Down},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
			if b.binding.Help().Desc == "" {
				t.Errorf("expected %s binding to have a help text", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	km := DefaultKeyMap()

	hasQ, hasCtrlC := false, false
	for _, k := range km.Quit.Keys() {
		switch k {
		case "q":
			hasQ = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}
	if !hasQ {
		t.Error("expected Quit binding to include 'q'")
	}
	if !hasCtrlC {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	total := 0
	for _, group := range km.FullHelp() {
		total += len(group)
	}
	if total != 14 {
		t.Errorf("FullHelp lists %d bindings, want all 14", total)
	}
}

func TestIsTextKey(t *testing.T) {
	for s, want := range map[string]bool{"q": true, "?": true, "é": true, "enter": false, "f5": false, "ctrl+c": false} {
		if got := isTextKey(s); got != want {
			t.Errorf("isTextKey(%q) = %v, want %v", s, got, want)
		}
	}
}
