package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashTickMsg is sent when a flash message may have expired.
type FlashTickMsg time.Time

// FlashTick returns a command that fires once FlashDuration has passed.
func FlashTick() tea.Cmd {
	return tea.Tick(FlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer is the bottom bar with key bindings or a transient flash message.
type Footer struct {
	width    int
	bindings []KeyBinding

	flashText    string
	flashType    FlashType
	flashExpires time.Time
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings replaces the displayed key bindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// Bindings returns the displayed key bindings
func (f *Footer) Bindings() []KeyBinding {
	return f.bindings
}

// SetFlash shows text in place of the bindings until FlashDuration passes.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.flashText = text
	f.flashType = flashType
	f.flashExpires = time.Now().Add(FlashDuration)
}

// ClearIfExpired drops an expired flash. It reports whether one was dropped.
func (f *Footer) ClearIfExpired(now time.Time) bool {
	if f.flashText == "" || now.Before(f.flashExpires) {
		return false
	}
	f.flashText = ""
	return true
}

// ClearFlash removes the flash message immediately
func (f *Footer) ClearFlash() {
	f.flashText = ""
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashText != ""
}

// FlashText returns the flash message
func (f *Footer) FlashText() string {
	return f.flashText
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashText != "" {
		return FooterStyle.Width(f.width).Render(f.flashStyle().Render(f.flashText))
	}

	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	var parts []string
	used := 2 // footer padding
	for _, b := range f.bindings {
		w := runewidth.StringWidth(b.Key+": "+b.Desc) + 5
		if f.width > 0 && used+w > f.width && len(parts) > 0 {
			break
		}
		used += w
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	return FooterStyle.Width(f.width).Render(strings.Join(parts, sep))
}

func (f *Footer) flashStyle() lipgloss.Style {
	switch f.flashType {
	case FlashSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	case FlashWarning:
		return lipgloss.NewStyle().Foreground(ColorSystem).Bold(true)
	case FlashError:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorSecondary)
	}
}
