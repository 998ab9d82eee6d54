package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/bridge"
)

// ErrorPanel shows a failed execution: the message, a collapsible stack
// trace and any suggestions.
type ErrorPanel struct {
	scrollPanel
	report    bridge.ErrorReport
	showTrace bool
}

// NewErrorPanel creates an empty error panel
func NewErrorPanel() *ErrorPanel {
	return &ErrorPanel{scrollPanel: newScrollPanel()}
}

// SetSize sets the panel dimensions
func (p *ErrorPanel) SetSize(width, height int) {
	p.setSize(width, height)
	p.updateContent()
}

// SetFocused sets the focus state
func (p *ErrorPanel) SetFocused(focused bool) {
	p.focused = focused
}

// SetReport replaces the displayed report. A new report starts with the
// stack trace collapsed.
func (p *ErrorPanel) SetReport(r bridge.ErrorReport) {
	if r.Message != p.report.Message || r.StackTrace != p.report.StackTrace {
		p.showTrace = false
		p.viewport.GotoTop()
	}
	p.report = r
	p.updateContent()
}

// ToggleTrace expands or collapses the stack trace.
func (p *ErrorPanel) ToggleTrace() {
	if p.report.StackTrace == "" {
		return
	}
	p.showTrace = !p.showTrace
	p.updateContent()
}

// TraceExpanded reports whether the stack trace is shown.
func (p *ErrorPanel) TraceExpanded() bool {
	return p.showTrace
}

// Update handles scrolling
func (p *ErrorPanel) Update(msg tea.Msg) tea.Cmd {
	return p.scroll(msg)
}

// Actions returns the panel's action buttons.
func (p *ErrorPanel) Actions() []KeyBinding {
	actions := []KeyBinding{{Key: "f", Desc: "Fix & Retry"}}
	if p.report.StackTrace != "" {
		actions = append(actions, KeyBinding{Key: "t", Desc: "Stack trace"})
	}
	return actions
}

func (p *ErrorPanel) updateContent() {
	p.viewport.SetContent(RenderReport(p.report, p.showTrace, p.contentWidth()))
}

// RenderReport renders an error report. A recognized host error gets a
// likely cause under the message. Each suggestion is its own list item;
// with no suggestions the block is omitted.
func RenderReport(r bridge.ErrorReport, showTrace bool, width int) string {
	var sb strings.Builder
	sb.WriteString(StatusErrorStyle.Render("✗ Execution failed"))
	sb.WriteString("\n\n")
	sb.WriteString(ChatMessageStyle.Width(width).Render(r.Message))
	sb.WriteString("\n")

	if d := bridge.Diagnose(r.Message); d.Known {
		sb.WriteString("\n")
		sb.WriteString(SectionLabelStyle.Render("Likely cause:"))
		sb.WriteString("\n")
		sb.WriteString(ChatMessageStyle.Width(width).Render(d.Summary))
		sb.WriteString("\n")
	}

	if r.StackTrace != "" {
		sb.WriteString("\n")
		if showTrace {
			sb.WriteString(SectionLabelStyle.Render("▾ Stack trace"))
			sb.WriteString("\n")
			sb.WriteString(DiffContextStyle.Render(r.StackTrace))
			sb.WriteString("\n")
		} else {
			sb.WriteString(SectionLabelStyle.Render("▸ Stack trace"))
			sb.WriteString("\n")
		}
	}

	if len(r.Suggestions) > 0 {
		sb.WriteString("\n")
		sb.WriteString(SectionLabelStyle.Render("Suggestions:"))
		for _, s := range r.Suggestions {
			sb.WriteString("\n")
			sb.WriteString(ChatMessageStyle.Width(width).Render("• " + s))
		}
	}
	return sb.String()
}

// View renders the panel
func (p *ErrorPanel) View() string {
	return p.render(renderActions(p.Actions()))
}
