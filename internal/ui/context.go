package ui

import (
	"sync"

	"github.com/zhubert/cadcopilot/internal/logger"
)

// ViewContext is the shared layout. Components size themselves from the
// values left by the last Resize rather than redoing the arithmetic.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int

	// PanelWidth is zero while the chat has the whole width.
	ChatWidth  int
	PanelWidth int

	mu sync.Mutex
}

var viewContext = sync.OnceValue(func() *ViewContext {
	logger.WithComponent("ui").Debug("view context created")
	return &ViewContext{HeaderHeight: HeaderHeight, FooterHeight: FooterHeight}
})

// GetViewContext returns the process-wide layout.
func GetViewContext() *ViewContext { return viewContext() }

// Resize lays out a terminal of the given size, split between chat and
// result panel when split is set. Sizes below the minimum are clamped.
func (v *ViewContext) Resize(width, height int, split bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth, v.TerminalHeight = width, height
	v.HeaderHeight, v.FooterHeight = HeaderHeight, FooterHeight
	v.ContentHeight = height - HeaderHeight - FooterHeight

	v.PanelWidth = 0
	if split {
		v.PanelWidth = width / PanelWidthRatio
	}
	v.ChatWidth = width - v.PanelWidth

	logger.WithComponent("ui").Debug("layout resized",
		"width", width,
		"height", height,
		"chat", v.ChatWidth,
		"panel", v.PanelWidth,
	)
}

// Inner is the room left inside a bordered box of outer size n.
func (v *ViewContext) Inner(n int) int {
	return n - BorderSize
}
