package app

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/ui"
	"github.com/zhubert/cadcopilot/internal/ui/modals"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// Shortcut is a keyboard shortcut with its metadata and handler. The
// registry drives key handling, the footer and the help modal.
type Shortcut struct {
	Key           string
	DisplayKey    string // defaults to Key
	Description   string
	Category      string
	RequiresPanel bool // only while the result panel is focused
	Handler       func(m *Model) (tea.Model, tea.Cmd)
	Condition     func(m *Model) bool
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryReview    = "Review"
	CategoryExecution = "Execution"
	CategoryGeneral   = "General"
)

var categoryOrder = []string{CategoryReview, CategoryExecution, CategoryGeneral}

func inState(s workflow.State) func(m *Model) bool {
	return func(m *Model) bool { return m.ctrl.State() == s }
}

// ShortcutRegistry is the central registry of keyboard shortcuts.
var ShortcutRegistry = []Shortcut{
	// Review
	{Key: "a", Description: "Apply the code in the host", Category: CategoryReview, RequiresPanel: true,
		Handler: shortcutApply, Condition: inState(workflow.ReviewingCode)},
	{Key: "r", Description: "Reject the proposal", Category: CategoryReview, RequiresPanel: true,
		Handler: shortcutReject, Condition: inState(workflow.ReviewingCode)},
	{Key: "e", Description: "Explain the code", Category: CategoryReview, RequiresPanel: true,
		Handler: shortcutExplain, Condition: inState(workflow.ReviewingCode)},
	{Key: "c", Description: "Copy the code", Category: CategoryReview, RequiresPanel: true,
		Handler: shortcutCopy, Condition: inState(workflow.ReviewingCode)},
	{Key: "d", Description: "Toggle the fix diff", Category: CategoryReview, RequiresPanel: true,
		Handler: shortcutTogglePatch, Condition: func(m *Model) bool {
			return m.ctrl.State() == workflow.ReviewingCode && m.codePanel.HasPatch()
		}},

	// Execution
	{Key: "f", Description: "Fix the code and retry", Category: CategoryExecution, RequiresPanel: true,
		Handler: shortcutFix, Condition: inState(workflow.Failed)},
	{Key: "t", Description: "Show or hide the stack trace", Category: CategoryExecution, RequiresPanel: true,
		Handler: shortcutToggleTrace, Condition: inState(workflow.Failed)},
	{Key: "u", Description: "Undo the last operation", Category: CategoryExecution, RequiresPanel: true,
		Handler: shortcutUndo, Condition: inState(workflow.Succeeded)},
	{Key: "x", Description: "Close the execution panel", Category: CategoryExecution, RequiresPanel: true,
		Handler: shortcutClose, Condition: inState(workflow.Succeeded)},

	// General
	{Key: "tab", DisplayKey: "Tab", Description: "Switch between input and panel", Category: CategoryGeneral,
		Handler: shortcutToggleFocus, Condition: func(m *Model) bool { return m.panelVisible() }},
	{Key: "esc", DisplayKey: "Esc", Description: "Back to the input", Category: CategoryGeneral, RequiresPanel: true,
		Handler: shortcutFocusInput},
	{Key: "ctrl+s", DisplayKey: "Ctrl+S", Description: "Settings", Category: CategoryGeneral,
		Handler: shortcutSettings},
	{Key: "ctrl+c", DisplayKey: "Ctrl+C", Description: "Quit", Category: CategoryGeneral,
		Handler: shortcutQuit},
}

// helpShortcut lives outside the registry: its handler reads the registry.
var helpShortcut = Shortcut{
	Key:           "?",
	Description:   "Keyboard shortcuts",
	Category:      CategoryGeneral,
	RequiresPanel: true,
}

// DisplayOnlyShortcuts are listed in help but not executable from it.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "Enter", Description: "Send the request (/help, /settings)", Category: CategoryGeneral},
	{DisplayKey: "j/k", Description: "Scroll the result panel", Category: CategoryGeneral},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll the chat log", Category: CategoryGeneral},
}

func (s Shortcut) displayKey() string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresPanel && m.focus != FocusPanel {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut runs the shortcut bound to key if it applies right now.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		if !m.isShortcutApplicable(helpShortcut) {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}
	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// footerBindings lists the shortcuts that apply right now.
func (m *Model) footerBindings() []ui.KeyBinding {
	var bindings []ui.KeyBinding
	if m.focus == FocusInput {
		bindings = append(bindings, ui.KeyBinding{Key: "enter", Desc: "send"})
	}
	for _, s := range append(ShortcutRegistry, helpShortcut) {
		if s.Key == "ctrl+c" || !m.isShortcutApplicable(s) {
			continue
		}
		bindings = append(bindings, ui.KeyBinding{Key: s.Key, Desc: s.Description})
	}
	return bindings
}

// helpSections groups shortcuts by category for the help modal.
func helpSections(shortcuts ...[]Shortcut) []modals.KeyGroup {
	byCategory := make(map[string][]modals.KeyHint)
	for _, s := range slices.Concat(shortcuts...) {
		byCategory[s.Category] = append(byCategory[s.Category], modals.KeyHint{Key: s.displayKey(), Desc: s.Description})
	}
	var sections []modals.KeyGroup
	for _, c := range categoryOrder {
		if len(byCategory[c]) > 0 {
			sections = append(sections, modals.KeyGroup{Title: c, Hints: byCategory[c]})
		}
	}
	return sections
}

// keyForDisplay maps a help-modal display key back to the registry key.
func keyForDisplay(display string) string {
	for _, s := range ShortcutRegistry {
		if s.displayKey() == display {
			return s.Key
		}
	}
	return display
}

func shortcutApply(m *Model) (tea.Model, tea.Cmd) {
	call := m.ctrl.Apply()
	return m, tea.Batch(m.sync(), m.runCall(call))
}

func shortcutReject(m *Model) (tea.Model, tea.Cmd) {
	m.ctrl.Reject()
	return m, m.sync()
}

func shortcutExplain(m *Model) (tea.Model, tea.Cmd) {
	m.ctrl.Explain()
	return m, m.sync()
}

func shortcutCopy(m *Model) (tea.Model, tea.Cmd) {
	code, ok := m.ctrl.Copy()
	if !ok {
		return m, nil
	}
	if err := m.clip.WriteText(code); err != nil {
		m.ctrl.ReportFailure(workflow.CopyFailedText, err)
		return m, tea.Batch(m.sync(), m.flash(ui.FlashError, "Could not copy: "+err.Error()))
	}
	return m, tea.Batch(m.codePanel.MarkCopied(), m.flash(ui.FlashSuccess, "Code copied to clipboard"))
}

func shortcutTogglePatch(m *Model) (tea.Model, tea.Cmd) {
	m.codePanel.TogglePatch()
	return m, nil
}

func shortcutFix(m *Model) (tea.Model, tea.Cmd) {
	call := m.ctrl.FixAndRetry()
	return m, tea.Batch(m.sync(), m.runCall(call))
}

func shortcutToggleTrace(m *Model) (tea.Model, tea.Cmd) {
	m.errorPanel.ToggleTrace()
	return m, nil
}

func shortcutUndo(m *Model) (tea.Model, tea.Cmd) {
	call := m.ctrl.Undo()
	return m, tea.Batch(m.sync(), m.runCall(call))
}

func shortcutClose(m *Model) (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	return m, m.sync()
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	if m.focus == FocusInput {
		m.setFocus(FocusPanel)
	} else {
		m.setFocus(FocusInput)
	}
	return m, nil
}

func shortcutFocusInput(m *Model) (tea.Model, tea.Cmd) {
	m.setFocus(FocusInput)
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.ctrl.OpenSettings()
	return m, m.sync()
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	registry := append(slices.Clone(ShortcutRegistry), helpShortcut)
	m.modal.Show(modals.NewHelpState(helpSections(registry, DisplayOnlyShortcuts)))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}
