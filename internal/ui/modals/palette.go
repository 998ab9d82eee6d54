package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette carries the parts of the ui theme the modals draw with. The ui
// package installs its palette with Use during init.
type Palette struct {
	Accent    color.Color // selection, borders, cursors
	Highlight color.Color // section headers, chosen options
	Text      color.Color
	Muted     color.Color
	Inverse   color.Color // text on an Accent background
	Warning   color.Color

	Title lipgloss.Style
	Hint  lipgloss.Style

	Width     int
	CharLimit int
}

// helpRows is how many shortcut rows the help list shows before scrolling.
const helpRows = 14

var palette = Palette{
	Accent:    lipgloss.Color("5"),
	Highlight: lipgloss.Color("6"),
	Text:      lipgloss.Color("7"),
	Muted:     lipgloss.Color("8"),
	Inverse:   lipgloss.Color("0"),
	Warning:   lipgloss.Color("3"),
	Title:     lipgloss.NewStyle().Bold(true),
	Hint:      lipgloss.NewStyle().Italic(true),
	Width:     64,
	CharLimit: 256,
}

// Use installs p as the modal palette. Zero sizes keep the current values.
func Use(p Palette) {
	if p.Width <= 0 {
		p.Width = palette.Width
	}
	if p.CharLimit <= 0 {
		p.CharLimit = palette.CharLimit
	}
	palette = p
}

// frame stacks a modal's title, body and hint line.
func frame(title, body, hint string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		palette.Title.Render(title),
		body,
		palette.Hint.Render(hint),
	)
}
