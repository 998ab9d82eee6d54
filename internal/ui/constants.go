package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// PanelWidthRatio is the denominator for the result panel width (1/2 of total width)
	PanelWidthRatio = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight bound layout calculations
	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Modal dimensions
const (
	ModalWidth          = 64
	ModalInputCharLimit = 256
)

// Timing
const (
	// FlashDuration is how long a footer flash message stays visible
	FlashDuration = 3 * time.Second

	// CopiedDuration is how long the code panel shows its copy confirmation
	CopiedDuration = 2 * time.Second
)
