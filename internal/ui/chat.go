package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/cadcopilot/internal/keys"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// Chat is the conversation log with the request input below it.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool
	messages []workflow.Message
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Describe what to build… (/help, /settings)"
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{viewport: vp, input: ti}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	logHeight := ctx.Inner(height - InputTotalHeight)
	if logHeight < 1 {
		logHeight = 1
	}
	c.viewport.SetWidth(ctx.Inner(width))
	c.viewport.SetHeight(logHeight)
	c.input.SetWidth(ctx.Inner(width) - InputPaddingWidth)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the displayed log and scrolls to the newest entry.
func (c *Chat) SetMessages(messages []workflow.Message) {
	c.messages = messages
	c.updateContent()
	c.viewport.GotoBottom()
}

// MessageCount returns the number of displayed messages
func (c *Chat) MessageCount() int {
	return len(c.messages)
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// Update forwards key and mouse input to the textarea or the log viewport.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.PgUp, keys.PgDown:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
	}
	if c.focused {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, ok := msg.(tea.MouseWheelMsg); ok {
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return c, tea.Batch(cmds...)
}

func (c *Chat) wrapWidth() int {
	if w := c.viewport.Width(); w > 0 {
		return w
	}
	return DefaultWrapWidth
}

func (c *Chat) updateContent() {
	c.viewport.SetContent(RenderMessages(c.messages, c.wrapWidth()))
}

// RenderMessages renders the chat log at the given width.
func RenderMessages(messages []workflow.Message, width int) string {
	if len(messages) == 0 {
		return lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).
			Render("Ask for a part, a feature or a change to the active design.")
	}
	body := ChatMessageStyle.Width(max(width-2, 10))
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch m.Role {
		case workflow.RoleUser:
			sb.WriteString(ChatUserStyle.Render("You"))
		case workflow.RoleAssistant:
			sb.WriteString(ChatAssistantStyle.Render("Copilot"))
		default:
			sb.WriteString(ChatSystemStyle.Render("•"))
		}
		sb.WriteString("\n")
		if m.Role == workflow.RoleSystem {
			sb.WriteString(ChatSystemStyle.Width(max(width-2, 10)).Render(m.Text))
		} else if m.Transient {
			sb.WriteString(StatusLoadingStyle.Render(m.Text))
		} else {
			sb.WriteString(body.Render(m.Text))
		}
	}
	return sb.String()
}

// View renders the chat log and input
func (c *Chat) View() string {
	ctx := GetViewContext()
	logStyle := PanelStyle
	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	log := logStyle.
		Width(ctx.Inner(c.width)).
		Height(ctx.Inner(c.height - InputTotalHeight)).
		Render(c.viewport.View())
	input := inputStyle.Width(ctx.Inner(c.width)).Render(c.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, log, input)
}
