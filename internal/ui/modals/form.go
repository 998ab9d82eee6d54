package modals

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/cadcopilot/internal/keys"
)

// newForm wraps fields in a single stacked group styled with the palette.
// The form is initialized eagerly so the first Render is complete.
func newForm(width int, fields ...huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(formTheme(palette)).
		WithShowHelp(false).
		WithWidth(width).
		WithLayout(huh.LayoutStack)
	form.Init()
	return form
}

// stepForm forwards msg to the form. Enter and Escape belong to the app,
// which saves or dismisses the modal.
func stepForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if s := key.String(); s == keys.Enter || s == keys.Escape {
			return form, nil
		}
	}
	next, cmd := form.Update(msg)
	return next.(*huh.Form), cmd
}

func formTheme(p Palette) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)
		accent := lipgloss.NewStyle().Foreground(p.Accent)
		text := lipgloss.NewStyle().Foreground(p.Text)
		muted := lipgloss.NewStyle().Foreground(p.Muted)

		f := &t.Focused
		f.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Accent)
		f.Card = f.Base
		f.Title = text.Bold(true)
		f.Description = muted.Italic(true)
		f.ErrorIndicator = lipgloss.NewStyle().Foreground(p.Warning).SetString(" *")
		f.ErrorMessage = lipgloss.NewStyle().Foreground(p.Warning)

		// model picker
		f.SelectSelector = accent.SetString("> ")
		f.Option = text

		// option toggles
		f.MultiSelectSelector = accent.SetString("> ")
		f.SelectedOption = lipgloss.NewStyle().Foreground(p.Highlight)
		f.SelectedPrefix = lipgloss.NewStyle().Foreground(p.Highlight).SetString("[x] ")
		f.UnselectedOption = text
		f.UnselectedPrefix = muted.SetString("[ ] ")

		// project root
		f.TextInput.Cursor = accent
		f.TextInput.Prompt = accent
		f.TextInput.Placeholder = muted
		f.TextInput.Text = text

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		t.Group.Title = lipgloss.NewStyle().Foreground(p.Highlight).Bold(true)
		t.Group.Description = muted
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}
