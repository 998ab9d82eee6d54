// Package ui provides the components of the copilot TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, model, document summary              │
//	├──────────────────────────┬──────────────────────────┤
//	│                          │                          │
//	│   Chat log               │   Result panel           │
//	│                          │   (code, execution or    │
//	├──────────────────────────┤    error, when visible)  │
//	│   Request input          │                          │
//	├──────────────────────────┴──────────────────────────┤
//	│ Footer: key bindings or a flash message             │
//	└─────────────────────────────────────────────────────┘
//
// The result panel takes 1/PanelWidthRatio of the width and is hidden while
// there is nothing to review; the chat then spans the full width.
//
// # Components
//
// ViewContext is the singleton holding the layout calculations. All size
// calculations go through it.
//
// CodePanel shows a proposal (title, numbered plan, highlighted code and
// notes) and, after a fix, the patch against the previous code.
// ExecutionPanel shows a running or finished execution with its output.
// ErrorPanel shows a failure with a collapsible stack trace and suggestions.
//
// Modal hosts a modals.ModalState: the settings form or the shortcut list.
//
// Styles are defined in styles.go; init hands the modals package its
// palette through modals.Use.
package ui
