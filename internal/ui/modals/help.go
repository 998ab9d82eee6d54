package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// hintRow is a selectable shortcut; groupRow is its section header.
type (
	hintRow  struct{ KeyHint }
	groupRow string
)

func (r hintRow) FilterValue() string { return r.Key + " " + r.Desc }
func (groupRow) FilterValue() string  { return "" }

// hintDelegate renders both row kinds in one line each.
type hintDelegate struct {
	group, key, desc lipgloss.Style
	selKey, selDesc  lipgloss.Style
}

func newHintDelegate(p Palette) hintDelegate {
	const keyColumn = 12
	d := hintDelegate{
		group: lipgloss.NewStyle().Bold(true).Foreground(p.Highlight),
		key:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Width(keyColumn),
		desc:  lipgloss.NewStyle().Foreground(p.Text),
	}
	d.selKey = d.key.Foreground(p.Inverse).Background(p.Accent)
	d.selDesc = d.desc.Foreground(p.Inverse).Background(p.Accent)
	return d
}

func (hintDelegate) Height() int                         { return 1 }
func (hintDelegate) Spacing() int                        { return 0 }
func (hintDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d hintDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch row := item.(type) {
	case groupRow:
		fmt.Fprint(w, d.group.Render(string(row)))
	case hintRow:
		key, desc, marker := d.key, d.desc, "  "
		if index == m.Index() {
			key, desc, marker = d.selKey, d.selDesc, "> "
		}
		fmt.Fprint(w, marker+key.Render(row.Key)+desc.Render(row.Desc))
	}
}

// HelpState is the filterable shortcut list. The app runs the selected
// hint's key on Enter.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.Filtering() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  ↑/↓: navigate  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	return frame(s.Title(), s.list.View(), s.Help())
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize leaves four rows for the title and hint line.
func (s *HelpState) SetSize(width, height int) {
	s.list.SetSize(width, max(height-4, 1))
}

// Selected returns the highlighted hint, or nil on a header or empty list.
func (s *HelpState) Selected() *KeyHint {
	if row, ok := s.list.SelectedItem().(hintRow); ok {
		return &row.KeyHint
	}
	return nil
}

// Filtering reports whether the filter prompt has the keyboard.
func (s *HelpState) Filtering() bool {
	return s.list.SettingFilter()
}

// NewHelpState lays out groups in order and highlights the first hint.
func NewHelpState(groups []KeyGroup) *HelpState {
	var rows []list.Item
	first := -1
	for _, g := range groups {
		rows = append(rows, groupRow(g.Title))
		for _, h := range g.Hints {
			if first < 0 {
				first = len(rows)
			}
			rows = append(rows, hintRow{h})
		}
	}

	l := list.New(rows, newHintDelegate(palette), palette.Width, helpRows)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	if first >= 0 {
		l.Select(first)
	}
	return &HelpState{list: l}
}
