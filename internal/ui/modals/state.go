// Package modals holds the overlay dialogs: the settings form and the
// shortcut list. Each dialog is a ModalState the ui.Modal host renders.
package modals

import tea "charm.land/bubbletea/v2"

// ModalState is implemented only by the dialog types in this package.
type ModalState interface {
	modalState()
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithSize is a dialog that fits itself to the screen.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// KeyHint is one row of the shortcut list.
type KeyHint struct {
	Key  string
	Desc string
}

// KeyGroup is a titled run of hints.
type KeyGroup struct {
	Title string
	Hints []KeyHint
}
