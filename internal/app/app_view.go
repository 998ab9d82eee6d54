package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/cadcopilot/internal/ui"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.footer.SetBindings(m.footerBindings())

	content := m.chat.View()
	if panel := m.panelView(); panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), content, m.footer.View())
}

func (m *Model) panelView() string {
	switch m.ctrl.Panel() {
	case workflow.PanelCode:
		return m.codePanel.View()
	case workflow.PanelExecution:
		return m.execPanel.View()
	case workflow.PanelError:
		return m.errorPanel.View()
	}
	return ""
}

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	ctx := ui.GetViewContext()
	ctx.Resize(m.width, m.height, m.panelVisible())

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
	m.codePanel.SetSize(ctx.PanelWidth, ctx.ContentHeight)
	m.execPanel.SetSize(ctx.PanelWidth, ctx.ContentHeight)
	m.errorPanel.SetSize(ctx.PanelWidth, ctx.ContentHeight)
}
