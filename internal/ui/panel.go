package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/cadcopilot/internal/keys"
)

// scrollPanel is the bordered, scrollable frame shared by the result panels.
type scrollPanel struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool
}

func newScrollPanel() scrollPanel {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return scrollPanel{viewport: vp}
}

func (p *scrollPanel) setSize(width, height int) {
	p.width = width
	p.height = height
	ctx := GetViewContext()
	// One line is reserved for the action row.
	p.viewport.SetWidth(max(ctx.Inner(width), 0))
	p.viewport.SetHeight(max(ctx.Inner(height)-1, 1))
}

func (p *scrollPanel) contentWidth() int {
	if w := p.viewport.Width(); w > 0 {
		return w
	}
	return DefaultWrapWidth
}

func (p *scrollPanel) scroll(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "j", keys.Down:
			p.viewport.ScrollDown(1)
		case "k", keys.Up:
			p.viewport.ScrollUp(1)
		case keys.PgDown:
			p.viewport.PageDown()
		case keys.PgUp:
			p.viewport.PageUp()
		}
		return nil
	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (p *scrollPanel) render(actions string) string {
	ctx := GetViewContext()
	style := PanelStyle
	if p.focused {
		style = PanelFocusedStyle
	}
	body := lipgloss.JoinVertical(lipgloss.Left, p.viewport.View(), actions)
	return style.
		Width(ctx.Inner(p.width)).
		Height(ctx.Inner(p.height)).
		Render(body)
}

// renderActions renders "[k] Label" buttons on one line.
func renderActions(actions []KeyBinding) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		label := ButtonLabelStyle
		if a.Desc == CopiedLabel {
			label = CopiedStyle
		}
		parts = append(parts, ButtonKeyStyle.Render("["+a.Key+"]")+" "+label.Render(a.Desc))
	}
	return strings.Join(parts, "  ")
}
