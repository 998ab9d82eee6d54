// Package app is the Bubble Tea model that ties the workflow controller to
// the bridge and the ui components.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/clipboard"
	"github.com/zhubert/cadcopilot/internal/logger"
	"github.com/zhubert/cadcopilot/internal/settings"
	"github.com/zhubert/cadcopilot/internal/ui"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// Focus represents which area receives key presses
type Focus int

const (
	FocusInput Focus = iota
	FocusPanel
)

func (f Focus) String() string {
	if f == FocusPanel {
		return "panel"
	}
	return "input"
}

// DefaultCallTimeout bounds a single bridge call when Options leaves it unset.
const DefaultCallTimeout = 60 * time.Second

// Options configures a Model.
type Options struct {
	Bridge    bridge.Bridge
	Store     settings.Store
	Clipboard clipboard.Writer
	// Notify sends a desktop notification when an execution finishes while
	// the terminal window is not focused.
	Notify      bool
	CallTimeout time.Duration
	Version     string
}

// Model is the main Bubble Tea model
type Model struct {
	opts   Options
	ctrl   *workflow.Controller
	bridge bridge.Bridge
	clip   clipboard.Writer

	header     *ui.Header
	footer     *ui.Footer
	chat       *ui.Chat
	codePanel  *ui.CodePanel
	execPanel  *ui.ExecutionPanel
	errorPanel *ui.ErrorPanel
	modal      *ui.Modal

	width         int
	height        int
	focus         Focus
	windowFocused bool

	// Set by controller events, applied by sync.
	panelChanged   bool
	overlayChanged bool
	finished       workflow.State

	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

// New creates a new app model
func New(opts Options) *Model {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewSystem()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		opts:          opts,
		ctrl:          workflow.New(opts.Store),
		bridge:        opts.Bridge,
		clip:          opts.Clipboard,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		chat:          ui.NewChat(),
		codePanel:     ui.NewCodePanel(),
		execPanel:     ui.NewExecutionPanel(),
		errorPanel:    ui.NewErrorPanel(),
		modal:         ui.NewModal(),
		focus:         FocusInput,
		windowFocused: true,
		ctx:           ctx,
		cancel:        cancel,
		log:           logger.WithComponent("app"),
	}
	m.ctrl.Subscribe(m.onEvent)
	m.ctrl.Welcome()
	m.chat.SetFocused(true)
	m.sync()
	return m
}

// Controller exposes the workflow state machine.
func (m *Model) Controller() *workflow.Controller {
	return m.ctrl
}

// Focus returns the focused area.
func (m *Model) Focus() Focus {
	return m.focus
}

// Init fetches the document summary from the host.
func (m *Model) Init() tea.Cmd {
	return m.fetchContext()
}

// Close cancels outstanding bridge calls.
func (m *Model) Close() {
	m.cancel()
}

// onEvent runs synchronously inside controller transitions; it only records
// what sync has to do.
func (m *Model) onEvent(ev workflow.Event) {
	switch ev.Kind {
	case workflow.EventPanelChanged:
		m.panelChanged = true
	case workflow.EventSettingsOverlay:
		m.overlayChanged = true
	case workflow.EventStateChanged:
		if ev.State == workflow.Succeeded || ev.State == workflow.Failed {
			m.finished = ev.State
		}
		m.log.Debug("workflow state", "state", ev.State)
	}
}

// sync copies controller state into the ui components.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd

	m.chat.SetMessages(m.ctrl.Messages())

	s := m.ctrl.Settings()
	m.header.SetModel(settings.ModelDisplayName(s.Model))
	m.header.SetContext(m.ctrl.DocumentContext())

	switch m.ctrl.Panel() {
	case workflow.PanelCode:
		m.codePanel.SetProposal(m.ctrl.Session(), m.ctrl.Patch())
	case workflow.PanelExecution:
		m.execPanel.SetExecution(m.ctrl.Execution())
	case workflow.PanelError:
		if r := m.ctrl.Report(); r != nil {
			m.errorPanel.SetReport(*r)
		}
	}

	if m.panelChanged {
		m.panelChanged = false
		if m.ctrl.Panel() == workflow.PanelNone {
			m.setFocus(FocusInput)
		} else {
			m.setFocus(FocusPanel)
		}
		m.updateSizes()
	}

	if m.overlayChanged {
		m.overlayChanged = false
		m.syncOverlay()
	}

	if m.finished != 0 {
		if cmd := m.notifyFinished(m.finished == workflow.Succeeded); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.finished = 0
	}
	return tea.Batch(cmds...)
}

func (m *Model) setFocus(f Focus) {
	if f == FocusPanel && m.ctrl.Panel() == workflow.PanelNone {
		f = FocusInput
	}
	m.focus = f
	m.chat.SetFocused(f == FocusInput)
	m.codePanel.SetFocused(f == FocusPanel)
	m.execPanel.SetFocused(f == FocusPanel)
	m.errorPanel.SetFocused(f == FocusPanel)
}

func (m *Model) panelVisible() bool {
	return m.ctrl.Panel() != workflow.PanelNone
}
