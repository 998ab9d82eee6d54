package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/cadcopilot/internal/ui/modals"
)

// Blueprint palette: drafting blue with an orange accent.
var (
	ColorPrimary     = lipgloss.Color("#3B82F6")
	ColorSecondary   = lipgloss.Color("#FB923C")
	ColorBorder      = lipgloss.Color("#334155")
	ColorBorderFocus = ColorPrimary
	ColorBg          = lipgloss.Color("#0F172A")
	ColorText        = lipgloss.Color("#E2E8F0")
	ColorTextMuted   = lipgloss.Color("#94A3B8")
	ColorTextInverse = ColorBg
	ColorUser        = lipgloss.Color("#93C5FD") // chat: user
	ColorAssistant   = lipgloss.Color("#FDBA74") // chat: copilot
	ColorSystem      = lipgloss.Color("#FACC15") // chat: notices, modal warnings
	ColorError       = lipgloss.Color("#F43F5E")
	ColorSuccess     = lipgloss.Color("#34D399")
	ColorDiffAdded   = lipgloss.Color("#86EFAC")
	ColorDiffRemoved = lipgloss.Color("#FDA4AF")
)

// The header fades from the primary blue into the background.
const (
	headerGradientStart = "#3B82F6"
	headerGradientEnd   = "#0F172A"
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SectionLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	NotesStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Chat styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ChatSystemStyle = lipgloss.NewStyle().
			Foreground(ColorSystem).
			Italic(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Action button styles
var (
	ButtonKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ButtonLabelStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	CopiedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Diff coloring styles
var (
	DiffAddedStyle = lipgloss.NewStyle().
			Foreground(ColorDiffAdded)

	DiffRemovedStyle = lipgloss.NewStyle().
				Foreground(ColorDiffRemoved)

	DiffContextStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

func init() {
	modals.Use(modals.Palette{
		Accent:    ColorPrimary,
		Highlight: ColorSecondary,
		Text:      ColorText,
		Muted:     ColorTextMuted,
		Inverse:   ColorTextInverse,
		Warning:   ColorSystem,
		Title:     ModalTitleStyle,
		Hint:      ModalHelpStyle,
		Width:     ModalWidth,
		CharLimit: ModalInputCharLimit,
	})
}
