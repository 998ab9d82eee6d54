package app

import (
	"strings"
	"testing"

	"github.com/zhubert/cadcopilot/internal/workflow"
)

func TestShortcutRegistry_AllShortcutsHaveHandlers(t *testing.T) {
	for _, s := range ShortcutRegistry {
		if s.Handler == nil {
			t.Errorf("shortcut %q has no handler", s.Key)
		}
		if s.Description == "" {
			t.Errorf("shortcut %q has no description", s.Key)
		}
	}
}

func TestShortcutRegistry_NoDuplicateKeys(t *testing.T) {
	seen := map[string]bool{helpShortcut.Key: true}
	for _, s := range ShortcutRegistry {
		if seen[s.Key] {
			t.Errorf("duplicate shortcut key %q", s.Key)
		}
		seen[s.Key] = true
	}
}

func TestFooterBindings_FollowState(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	has := func(key string) bool {
		for _, b := range m.footerBindings() {
			if b.Key == key {
				return true
			}
		}
		return false
	}

	if !has("enter") || has("a") {
		t.Error("input focus should offer send only")
	}
	submit(m, "bracket")
	for _, key := range []string{"a", "r", "e", "c", "?"} {
		if !has(key) {
			t.Errorf("review bindings missing %q", key)
		}
	}
	if has("u") || has("f") {
		t.Error("execution bindings shown during review")
	}
	sendKey(m, "a")
	if m.ctrl.State() != workflow.Succeeded || !has("u") || !has("x") {
		t.Error("succeeded bindings missing undo/close")
	}
}

func TestHelpSections(t *testing.T) {
	sections := helpSections(ShortcutRegistry, []Shortcut{helpShortcut}, DisplayOnlyShortcuts)
	if len(sections) != len(categoryOrder) {
		t.Fatalf("sections = %d, want %d", len(sections), len(categoryOrder))
	}
	for i, s := range sections {
		if s.Title != categoryOrder[i] {
			t.Errorf("section %d = %q, want %q", i, s.Title, categoryOrder[i])
		}
	}
	var keys []string
	for _, sc := range sections[len(sections)-1].Hints {
		keys = append(keys, sc.Key)
	}
	if !strings.Contains(strings.Join(keys, " "), "Ctrl+S") {
		t.Errorf("general section = %v, want Ctrl+S", keys)
	}
}

func TestKeyForDisplay(t *testing.T) {
	tests := map[string]string{"Ctrl+S": "ctrl+s", "Tab": "tab", "a": "a", "j/k": "j/k"}
	for display, want := range tests {
		if got := keyForDisplay(display); got != want {
			t.Errorf("keyForDisplay(%q) = %q, want %q", display, got, want)
		}
	}
}
