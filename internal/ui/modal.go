package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/cadcopilot/internal/ui/modals"
)

// Modal hosts at most one dialog over the main view.
type Modal struct {
	State modals.ModalState
}

func NewModal() *Modal { return &Modal{} }

func (m *Modal) Show(state modals.ModalState) { m.State = state }

func (m *Modal) Hide() { m.State = nil }

func (m *Modal) IsVisible() bool { return m.State != nil }

// Update forwards msg to the open dialog, if any.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View centers the dialog in a screen of the given size. Sizable dialogs
// get the screen minus the modal border and padding.
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}
	if sized, ok := m.State.(modals.ModalWithSize); ok {
		sized.SetSize(min(screenWidth-4, ModalWidth), screenHeight-6)
	}
	box := ModalStyle.Render(m.State.Render())
	return lipgloss.Place(screenWidth, screenHeight, lipgloss.Center, lipgloss.Center, box)
}
