package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/errors"
	"github.com/zhubert/cadcopilot/internal/ui"
)

// flash puts text in the footer and schedules the tick that clears it.
func (m *Model) flash(kind ui.FlashType, text string) tea.Cmd {
	m.footer.SetFlash(text, kind)
	return ui.FlashTick()
}

// withFailure adds an error flash for err to cmd. The full error is already
// in the chat log, so the footer only names the failure class.
func (m *Model) withFailure(err error, cmd tea.Cmd) tea.Cmd {
	if err == nil {
		return cmd
	}
	return tea.Batch(cmd, m.flash(ui.FlashError, failureText(err)))
}

func failureText(err error) string {
	switch errors.GetKind(err) {
	case errors.KindTimeout:
		return "CAD host did not answer in time"
	case errors.KindBridge:
		return "CAD host call failed"
	case errors.KindExecution:
		return "Execution failed"
	}
	return err.Error()
}
