package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/notification"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// GenerationDoneMsg carries a generate response back to the event loop.
type GenerationDoneMsg struct {
	Response bridge.GenerateResponse
	Err      error
}

// ExecutionDoneMsg carries an execute result back to the event loop.
type ExecutionDoneMsg struct {
	Result bridge.ExecutionResult
	Err    error
}

// FixDoneMsg carries a fix response back to the event loop.
type FixDoneMsg struct {
	Response bridge.GenerateResponse
	Err      error
}

// UndoDoneMsg reports the outcome of an undo.
type UndoDoneMsg struct {
	Err error
}

// ContextMsg carries the host document summary.
type ContextMsg struct {
	Context bridge.DocumentContext
	Err     error
}

// callContext derives a per-call context that is cancelled on quit.
func (m *Model) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.opts.CallTimeout)
}

// runCall turns a controller Call into the command that performs it.
func (m *Model) runCall(call *workflow.Call) tea.Cmd {
	if call == nil || m.bridge == nil {
		return nil
	}
	b := m.bridge
	m.log.Debug("bridge call", "call", call.Kind)

	switch call.Kind {
	case workflow.CallGenerate:
		req := call.Generate
		return func() tea.Msg {
			ctx, cancel := m.callContext()
			defer cancel()
			resp, err := b.Generate(ctx, req)
			return GenerationDoneMsg{Response: resp, Err: err}
		}
	case workflow.CallExecute:
		code := call.Code
		return func() tea.Msg {
			ctx, cancel := m.callContext()
			defer cancel()
			result, err := b.Execute(ctx, code)
			return ExecutionDoneMsg{Result: result, Err: err}
		}
	case workflow.CallFix:
		req := call.Fix
		return func() tea.Msg {
			ctx, cancel := m.callContext()
			defer cancel()
			resp, err := b.Fix(ctx, req)
			return FixDoneMsg{Response: resp, Err: err}
		}
	case workflow.CallUndo:
		return func() tea.Msg {
			ctx, cancel := m.callContext()
			defer cancel()
			return UndoDoneMsg{Err: b.Undo(ctx)}
		}
	}
	return nil
}

func (m *Model) fetchContext() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	b := m.bridge
	return func() tea.Msg {
		ctx, cancel := m.callContext()
		defer cancel()
		dc, err := b.Context(ctx)
		return ContextMsg{Context: dc, Err: err}
	}
}

func (m *Model) notifyFinished(success bool) tea.Cmd {
	if !m.opts.Notify || m.windowFocused {
		return nil
	}
	title := m.ctrl.Session().Title
	return func() tea.Msg {
		_ = notification.ExecutionFinished(title, success)
		return nil
	}
}

func (m *Model) handleGenerationDone(msg GenerationDoneMsg) tea.Cmd {
	if msg.Err != nil {
		m.ctrl.Fail(workflow.CallGenerate, msg.Err)
		// Offer the failed request for another try unless the user has
		// started typing something else.
		if m.chat.GetInput() == "" {
			m.chat.SetInput(m.ctrl.LastPrompt())
		}
		return m.sync()
	}
	call := m.ctrl.CompleteGeneration(msg.Response)
	return tea.Batch(m.sync(), m.runCall(call))
}

func (m *Model) handleExecutionDone(msg ExecutionDoneMsg) tea.Cmd {
	if msg.Err != nil {
		m.ctrl.Fail(workflow.CallExecute, msg.Err)
		return m.sync()
	}
	m.ctrl.CompleteExecution(msg.Result)
	cmds := []tea.Cmd{m.sync()}
	if msg.Result.Success {
		cmds = append(cmds, m.fetchContext())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleFixDone(msg FixDoneMsg) tea.Cmd {
	if msg.Err != nil {
		m.ctrl.Fail(workflow.CallFix, msg.Err)
		return m.sync()
	}
	m.ctrl.CompleteFix(msg.Response)
	return m.sync()
}

func (m *Model) handleUndoDone(msg UndoDoneMsg) tea.Cmd {
	if msg.Err != nil {
		m.ctrl.Fail(workflow.CallUndo, msg.Err)
		return m.sync()
	}
	return m.fetchContext()
}

func (m *Model) handleContext(msg ContextMsg) tea.Cmd {
	if msg.Err != nil {
		m.ctrl.ReportFailure(workflow.NoContextText, msg.Err)
		return m.withFailure(msg.Err, m.sync())
	}
	m.ctrl.SetDocumentContext(msg.Context)
	return m.sync()
}
