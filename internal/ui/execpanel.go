package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/workflow"
)

// Execution panel status lines.
const (
	ExecutingText = "Executing code in the host…"
	ExecutedText  = "✓ Code executed successfully!"
)

// ExecutionPanel shows a running or finished execution.
type ExecutionPanel struct {
	scrollPanel
	execution workflow.Execution
}

// NewExecutionPanel creates an empty execution panel
func NewExecutionPanel() *ExecutionPanel {
	return &ExecutionPanel{scrollPanel: newScrollPanel()}
}

// SetSize sets the panel dimensions
func (p *ExecutionPanel) SetSize(width, height int) {
	p.setSize(width, height)
	p.updateContent()
}

// SetFocused sets the focus state
func (p *ExecutionPanel) SetFocused(focused bool) {
	p.focused = focused
}

// SetExecution replaces the displayed execution state.
func (p *ExecutionPanel) SetExecution(e workflow.Execution) {
	p.execution = e
	p.updateContent()
}

// Update handles scrolling
func (p *ExecutionPanel) Update(msg tea.Msg) tea.Cmd {
	return p.scroll(msg)
}

// Actions returns the panel's action buttons. A pending execution has none.
func (p *ExecutionPanel) Actions() []KeyBinding {
	if p.execution.Pending {
		return nil
	}
	return []KeyBinding{
		{Key: "u", Desc: "Undo"},
		{Key: "x", Desc: "Close"},
	}
}

// OutputLines returns the rendered output lines, one per effect.
func (p *ExecutionPanel) OutputLines() []string {
	return append([]string(nil), p.execution.Output...)
}

func (p *ExecutionPanel) updateContent() {
	p.viewport.SetContent(p.renderContent(p.contentWidth()))
}

func (p *ExecutionPanel) renderContent(width int) string {
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Execution"))
	sb.WriteString("\n\n")
	if p.execution.Pending {
		sb.WriteString(StatusLoadingStyle.Render(ExecutingText))
		return sb.String()
	}
	sb.WriteString(StatusSuccessStyle.Render(ExecutedText))
	for _, line := range p.execution.Output {
		sb.WriteString("\n")
		sb.WriteString(ChatMessageStyle.Width(width).Render(line))
	}
	return sb.String()
}

// View renders the panel
func (p *ExecutionPanel) View() string {
	return p.render(renderActions(p.Actions()))
}
