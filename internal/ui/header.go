package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zhubert/cadcopilot/internal/bridge"
)

const headerTitle = " cadcopilot"

// Header is the top bar: the app title, the active model and a summary of
// the host document.
type Header struct {
	width   int
	model   string
	context *bridge.DocumentContext
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetModel sets the backend label shown next to the title
func (h *Header) SetModel(label string) {
	h.model = label
}

// SetContext sets the document summary. Nil shows a loading hint.
func (h *Header) SetContext(dc *bridge.DocumentContext) {
	h.context = dc
}

// ContextText returns the plain document summary.
func (h *Header) ContextText() string {
	if h.context == nil {
		return "loading document…"
	}
	return FormatContext(*h.context)
}

// FormatContext renders a document summary on one line.
func FormatContext(dc bridge.DocumentContext) string {
	return fmt.Sprintf("%s · %s · %d selected · %d params",
		dc.DocumentName, dc.Units, dc.SelectionCount, dc.ParameterCount)
}

// View renders the header
func (h *Header) View() string {
	left := headerTitle
	if h.model != "" {
		left += " [" + h.model + "]"
	}
	right := h.ContextText() + " "

	// Drop the document summary before the title when space is short.
	avail := h.width - runewidth.StringWidth(left)
	if runewidth.StringWidth(right) > avail {
		right = ansi.Truncate(right, max(avail-1, 0), "…")
	}
	padding := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if padding < 0 {
		padding = 0
	}

	return renderGradient(left+strings.Repeat(" ", padding)+right, uniseg.GraphemeClusterCount(left))
}

// parseHexColor parses a hex color string (e.g., "#3B82F6") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a background fading from the primary
// color to the app background, one grapheme cluster per cell. The first
// boldClusters clusters are bold.
func renderGradient(content string, boldClusters int) string {
	if content == "" {
		return ""
	}
	startR, startG, startB := parseHexColor(headerGradientStart)
	endR, endG, endB := parseHexColor(headerGradientEnd)

	width := uniseg.GraphemeClusterCount(content)
	var result strings.Builder
	gr := uniseg.NewGraphemes(content)
	for i := 0; gr.Next(); i++ {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(ColorText).
			Bold(i < boldClusters)
		result.WriteString(style.Render(gr.Str()))
	}
	return result.String()
}
