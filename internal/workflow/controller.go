// Package workflow implements the panel's conversation and review state
// machine.
//
// The Controller owns the chat log, the proposal under review and the
// visibility of the result panels. It performs no IO: transitions that need
// the host return a Call, and the caller reports the outcome through the
// matching Complete method or Fail. Only one generate, execute or fix call
// may be outstanding at a time.
package workflow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/logger"
	"github.com/zhubert/cadcopilot/internal/settings"
)

// Fixed chat texts.
const (
	GeneratingText = "Generating code... ⏳"
	RejectedText   = "Code rejected. What would you like to try instead?"
	UndoneText     = "Last operation undone."
	CopyFailedText = "Could not copy the code"
	NoContextText  = "Could not read the CAD document"
	FixingText     = "Attempting to fix the code..."
	SavedText      = "Settings saved."
	BusyText       = "Still working on the previous request."
	WelcomeText    = "Hi! Describe the part or change you want and I'll write the code for it. Type /help for tips."
)

// Controller is the workflow state machine. It is not safe for concurrent
// use; the Bubble Tea event loop owns it.
type Controller struct {
	state    State
	session  Session
	messages []Message
	panel    Panel

	execution  Execution
	report     *bridge.ErrorReport
	patch      *bridge.Patch
	lastPrompt string

	store        settings.Store
	settings     settings.Settings
	settingsOpen bool

	docContext *bridge.DocumentContext

	// busy is the outstanding generate, execute or fix call, if any.
	busy CallKind

	subscribers []func(Event)
	log         *slog.Logger
}

// New returns a controller in Idle with settings loaded from store. A load
// failure leaves the defaults in place and is reported in the chat log.
func New(store settings.Store) *Controller {
	c := &Controller{
		state:    Idle,
		store:    store,
		settings: settings.Default(),
		log:      logger.WithComponent("workflow"),
	}
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			c.log.Warn("settings load failed", "error", err)
			c.appendMessage(RoleSystem, fmt.Sprintf("Could not load settings, using defaults: %v", err))
		} else {
			c.settings = loaded
		}
	}
	return c
}

// State returns the current workflow state.
func (c *Controller) State() State { return c.state }

// Session returns a copy of the proposal under review.
func (c *Controller) Session() Session {
	s := c.session
	s.Plan = append([]string(nil), c.session.Plan...)
	return s
}

// Messages returns a copy of the chat log.
func (c *Controller) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// Panel returns the visible result panel.
func (c *Controller) Panel() Panel { return c.panel }

// Execution returns the execution panel contents.
func (c *Controller) Execution() Execution { return c.execution }

// Report returns the failure report shown in the error panel, or nil.
func (c *Controller) Report() *bridge.ErrorReport { return c.report }

// Patch returns the change made by the last fix, or nil.
func (c *Controller) Patch() *bridge.Patch { return c.patch }

// Settings returns the active settings record.
func (c *Controller) Settings() settings.Settings { return c.settings }

// SettingsOpen reports whether the settings overlay is shown.
func (c *Controller) SettingsOpen() bool { return c.settingsOpen }

// Busy reports whether a generate, execute or fix call is outstanding.
func (c *Controller) Busy() bool { return c.busy != 0 }

// Pending returns the kind of the outstanding call, or zero.
func (c *Controller) Pending() CallKind { return c.busy }

// LastPrompt returns the most recent submitted request.
func (c *Controller) LastPrompt() string { return c.lastPrompt }

// DocumentContext returns the last known host document summary, or nil.
func (c *Controller) DocumentContext() *bridge.DocumentContext { return c.docContext }

// Submit starts a generation for input. Blank input is ignored.
func (c *Controller) Submit(input string) *Call {
	prompt := strings.TrimSpace(input)
	if prompt == "" {
		return nil
	}
	if c.refuseIfBusy() {
		return nil
	}
	switch c.state {
	case Idle, ReviewingCode, Succeeded, Failed:
	default:
		return nil
	}

	c.appendMessage(RoleUser, prompt)
	c.lastPrompt = prompt
	c.clearSession()
	c.setPanel(PanelNone)
	c.messages = append(c.messages, Message{Role: RoleAssistant, Text: GeneratingText, Transient: true})
	c.emit(EventMessageAppended, &c.messages[len(c.messages)-1])
	c.busy = CallGenerate
	c.setState(AwaitingGeneration)

	req := bridge.GenerateRequest{
		Prompt:      prompt,
		Model:       c.settings.Model,
		ProjectRoot: c.settings.ProjectRoot,
	}
	if c.docContext != nil {
		dc := *c.docContext
		req.Context = &dc
	}
	return &Call{Kind: CallGenerate, Generate: req}
}

// CompleteGeneration shows a generation response for review. With auto-run
// on it applies the code immediately and returns the execute call.
func (c *Controller) CompleteGeneration(resp bridge.GenerateResponse) *Call {
	if c.state != AwaitingGeneration || c.busy != CallGenerate {
		c.log.Debug("ignoring stale generation response", "state", c.state)
		return nil
	}
	c.busy = 0
	c.removeTransient()

	if resp.Code == "" {
		c.appendMessage(RoleSystem, "The assistant returned no code. Try rephrasing your request.")
		c.setState(Idle)
		return nil
	}

	c.showProposal(resp.Title, resp.Plan, resp.Code, resp.Notes)
	c.patch = nil
	c.setState(ReviewingCode)

	if c.settings.AutoRun {
		c.log.Info("auto-run enabled, applying generated code")
		return c.Apply()
	}
	return nil
}

// Apply sends the reviewed code for execution.
func (c *Controller) Apply() *Call {
	if c.state != ReviewingCode || !c.session.HasCode() {
		return nil
	}
	if c.refuseIfBusy() {
		return nil
	}
	c.session.Executing = true
	c.execution = Execution{Pending: true}
	c.report = nil
	c.setPanel(PanelExecution)
	c.emit(EventSessionChanged, nil)
	c.busy = CallExecute
	c.setState(Executing)
	return &Call{Kind: CallExecute, Code: c.session.Code}
}

// CompleteExecution records the outcome of an execution.
func (c *Controller) CompleteExecution(result bridge.ExecutionResult) {
	if c.state != Executing || c.busy != CallExecute {
		c.log.Debug("ignoring stale execution result", "state", c.state)
		return
	}
	c.busy = 0

	if result.Success {
		c.execution = Execution{Success: true, Output: append([]string(nil), result.Output...)}
		c.emit(EventPanelChanged, nil)
		c.setState(Succeeded)
		return
	}

	report := result.Report()
	c.report = &report
	c.execution = Execution{}
	c.session.Executing = false
	c.emit(EventSessionChanged, nil)
	c.setPanel(PanelError)
	c.setState(Failed)
}

// FixAndRetry asks the host to repair the code that failed.
func (c *Controller) FixAndRetry() *Call {
	if c.state != Failed || !c.session.HasCode() {
		return nil
	}
	if c.refuseIfBusy() {
		return nil
	}
	c.appendMessage(RoleSystem, FixingText)
	c.busy = CallFix
	c.setState(AwaitingGeneration)

	req := bridge.FixRequest{
		Code:  c.session.Code,
		Title: c.session.Title,
		Plan:  append([]string(nil), c.session.Plan...),
	}
	if c.report != nil {
		req.Error = *c.report
	}
	return &Call{Kind: CallFix, Fix: req}
}

// CompleteFix shows the repaired code for review. The plan is kept when the
// response carries none.
func (c *Controller) CompleteFix(resp bridge.GenerateResponse) {
	if c.state != AwaitingGeneration || c.busy != CallFix {
		c.log.Debug("ignoring stale fix response", "state", c.state)
		return
	}
	c.busy = 0

	if resp.Code == "" {
		c.appendMessage(RoleSystem, "The fix returned no code.")
		c.setState(Failed)
		return
	}

	previous := c.session.Code
	plan := resp.Plan
	if len(plan) == 0 {
		plan = c.session.Plan
	}
	c.report = nil
	c.showProposal(resp.Title, plan, resp.Code, resp.Notes)
	p := bridge.Diff(previous, resp.Code)
	c.patch = &p
	c.setState(ReviewingCode)
}

// Reject discards the proposal under review.
func (c *Controller) Reject() {
	if c.state != ReviewingCode {
		return
	}
	c.setPanel(PanelNone)
	c.clearSession()
	c.appendMessage(RoleSystem, RejectedText)
	c.setState(Idle)
}

// Close dismisses a successful execution.
func (c *Controller) Close() {
	if c.state != Succeeded {
		return
	}
	c.finishExecution()
}

// Undo reverts a successful execution. The returned call is fire-and-forget.
func (c *Controller) Undo() *Call {
	if c.state != Succeeded {
		return nil
	}
	c.appendMessage(RoleSystem, UndoneText)
	c.finishExecution()
	return &Call{Kind: CallUndo}
}

// Explain adds an explanation of the proposal to the chat log.
func (c *Controller) Explain() {
	if c.state != ReviewingCode || !c.session.HasCode() {
		return
	}
	c.appendMessage(RoleAssistant, fmt.Sprintf("Explanation of %q:\n\n%s", c.session.Title, c.session.Notes))
}

// Copy returns the code under review for the clipboard.
func (c *Controller) Copy() (string, bool) {
	if c.state != ReviewingCode || !c.session.HasCode() {
		return "", false
	}
	return c.session.Code, true
}

// Help adds the usage guide to the chat log.
func (c *Controller) Help() {
	c.appendMessage(RoleAssistant, HelpText)
}

// Welcome adds the greeting shown when the panel opens.
func (c *Controller) Welcome() {
	c.appendMessage(RoleAssistant, WelcomeText)
}

// OpenSettings shows the settings overlay.
func (c *Controller) OpenSettings() {
	if c.settingsOpen {
		return
	}
	c.settingsOpen = true
	c.emit(EventSettingsOverlay, nil)
}

// CancelSettings hides the overlay and discards edits.
func (c *Controller) CancelSettings() {
	if !c.settingsOpen {
		return
	}
	c.settingsOpen = false
	c.emit(EventSettingsOverlay, nil)
}

// SaveSettings persists s wholesale and closes the overlay. On failure the
// previous record stays active.
func (c *Controller) SaveSettings(s settings.Settings) error {
	s = s.Normalize()
	if c.store != nil {
		if err := c.store.Save(s); err != nil {
			c.log.Error("settings save failed", "error", err)
			c.closeOverlay()
			c.appendMessage(RoleSystem, fmt.Sprintf("Could not save settings: %v", err))
			return err
		}
	}
	c.settings = s
	c.closeOverlay()
	c.emit(EventSettingsChanged, nil)
	c.appendMessage(RoleSystem, SavedText)
	c.log.Info("settings saved", "model", s.Model, "autoRun", s.AutoRun)
	return nil
}

// SetDocumentContext records the latest host document summary.
func (c *Controller) SetDocumentContext(dc bridge.DocumentContext) {
	c.docContext = &dc
	c.emit(EventContextChanged, nil)
}

// Fail reports that the bridge call of the given kind could not complete.
// The user's prompt stays in the log and the workflow falls back to the
// last state the user could act from.
func (c *Controller) Fail(kind CallKind, err error) {
	if kind != CallUndo && c.busy != kind {
		c.log.Debug("ignoring stale failure", "call", kind, "error", err)
		return
	}
	c.log.Error("bridge call failed", "call", kind, "error", err)

	switch kind {
	case CallGenerate:
		c.busy = 0
		c.removeTransient()
		c.appendMessage(RoleSystem, fmt.Sprintf("Code generation failed: %v", err))
		c.setState(Idle)
	case CallFix:
		c.busy = 0
		c.appendMessage(RoleSystem, fmt.Sprintf("Fix failed: %v", err))
		c.setPanel(PanelError)
		c.setState(Failed)
	case CallExecute:
		c.busy = 0
		c.session.Executing = false
		c.execution = Execution{}
		c.emit(EventSessionChanged, nil)
		c.appendMessage(RoleSystem, fmt.Sprintf("Could not run the code: %v", err))
		c.setPanel(PanelCode)
		c.setState(ReviewingCode)
	case CallUndo:
		c.appendMessage(RoleSystem, fmt.Sprintf("Undo failed: %v", err))
	}
}

// ReportFailure records a failure outside the bridge workflow, such as a
// clipboard write or a context query, as a system message. The workflow
// state is unchanged.
func (c *Controller) ReportFailure(what string, err error) {
	c.log.Error("operation failed", "what", what, "error", err)
	c.appendMessage(RoleSystem, fmt.Sprintf("%s: %v", what, err))
}

func (c *Controller) refuseIfBusy() bool {
	if c.busy == 0 {
		return false
	}
	c.appendMessage(RoleSystem, BusyText)
	return true
}

func (c *Controller) showProposal(title string, plan []string, code, notes string) {
	c.session = Session{
		Title: title,
		Plan:  append([]string(nil), plan...),
		Code:  code,
		Notes: notes,
	}
	c.emit(EventSessionChanged, nil)
	c.setPanel(PanelCode)
}

func (c *Controller) finishExecution() {
	c.session.Executing = false
	c.execution = Execution{}
	c.emit(EventSessionChanged, nil)
	c.setPanel(PanelNone)
	c.setState(Idle)
}

func (c *Controller) clearSession() {
	c.session = Session{}
	c.report = nil
	c.patch = nil
	c.execution = Execution{}
	c.emit(EventSessionChanged, nil)
}

func (c *Controller) closeOverlay() {
	if c.settingsOpen {
		c.settingsOpen = false
		c.emit(EventSettingsOverlay, nil)
	}
}

func (c *Controller) appendMessage(role Role, text string) {
	c.messages = append(c.messages, Message{Role: role, Text: text})
	c.emit(EventMessageAppended, &c.messages[len(c.messages)-1])
}

func (c *Controller) removeTransient() {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Transient {
			removed := c.messages[i]
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			c.emit(EventMessageRemoved, &removed)
			return
		}
	}
}

func (c *Controller) setPanel(p Panel) {
	if c.panel == p {
		return
	}
	c.panel = p
	c.emit(EventPanelChanged, nil)
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.log.Debug("state transition", "from", c.state, "to", s)
	c.state = s
	c.emit(EventStateChanged, nil)
}
