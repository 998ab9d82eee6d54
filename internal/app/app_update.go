package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/keys"
	"github.com/zhubert/cadcopilot/internal/ui"
	"github.com/zhubert/cadcopilot/internal/ui/modals"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.MouseWheelMsg:
		if m.modal.IsVisible() {
			_, cmd := m.modal.Update(msg)
			return m, cmd
		}
		if m.focus == FocusPanel {
			return m, m.updatePanel(msg)
		}
		_, cmd := m.chat.Update(msg)
		return m, cmd

	case GenerationDoneMsg:
		return m, m.withFailure(msg.Err, m.handleGenerationDone(msg))
	case ExecutionDoneMsg:
		return m, m.withFailure(msg.Err, m.handleExecutionDone(msg))
	case FixDoneMsg:
		return m, m.withFailure(msg.Err, m.handleFixDone(msg))
	case UndoDoneMsg:
		return m, m.withFailure(msg.Err, m.handleUndoDone(msg))
	case ContextMsg:
		return m, m.handleContext(msg)

	case ui.CopiedResetMsg:
		m.codePanel.HandleCopiedReset(msg)
		return m, nil

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired(time.Time(msg))
		return m, nil
	}

	if m.modal.IsVisible() {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}
	if m.focus == FocusInput {
		_, cmd := m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.CtrlC {
		return shortcutQuit(m)
	}
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if result, cmd, ok := m.ExecuteShortcut(key); ok {
		return result, cmd
	}

	if m.focus == FocusPanel {
		return m, m.updatePanel(msg)
	}

	if key == keys.Enter {
		return m, m.submitInput()
	}
	_, cmd := m.chat.Update(msg)
	return m, cmd
}

// submitInput sends the request input to the controller.
func (m *Model) submitInput() tea.Cmd {
	input := m.chat.GetInput()
	if cmd, ok := m.handleSlashCommand(input); ok {
		m.chat.ClearInput()
		return cmd
	}
	call := m.ctrl.Submit(input)
	if call != nil {
		m.chat.ClearInput()
	}
	return tea.Batch(m.sync(), m.runCall(call))
}

func (m *Model) updatePanel(msg tea.Msg) tea.Cmd {
	switch m.ctrl.Panel() {
	case workflow.PanelCode:
		return m.codePanel.Update(msg)
	case workflow.PanelExecution:
		return m.execPanel.Update(msg)
	case workflow.PanelError:
		return m.errorPanel.Update(msg)
	}
	return nil
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch state := m.modal.State.(type) {
	case *modals.SettingsState:
		switch key {
		case keys.Escape:
			m.ctrl.CancelSettings()
			return m, m.sync()
		case keys.Enter:
			if err := m.ctrl.SaveSettings(state.Values()); err != nil {
				return m, tea.Batch(m.sync(), m.flash(ui.FlashError, "Settings not saved"))
			}
			return m, tea.Batch(m.sync(), m.flash(ui.FlashSuccess, workflow.SavedText))
		}
	case *modals.HelpState:
		if state.Filtering() {
			break
		}
		switch key {
		case keys.Escape, "?":
			m.modal.Hide()
			return m, nil
		case keys.Enter:
			hint := state.Selected()
			m.modal.Hide()
			if hint == nil {
				return m, nil
			}
			result, cmd, _ := m.ExecuteShortcut(keyForDisplay(hint.Key))
			return result, cmd
		}
	}
	_, cmd := m.modal.Update(msg)
	return m, cmd
}

// syncOverlay shows or hides the settings form to match the controller.
func (m *Model) syncOverlay() {
	_, showing := m.modal.State.(*modals.SettingsState)
	switch {
	case m.ctrl.SettingsOpen() && !showing:
		m.modal.Show(modals.NewSettingsState(m.ctrl.Settings()))
	case !m.ctrl.SettingsOpen() && showing:
		m.modal.Hide()
	}
}
