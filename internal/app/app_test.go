package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/clipboard"
	"github.com/zhubert/cadcopilot/internal/keys"
	"github.com/zhubert/cadcopilot/internal/settings"
	"github.com/zhubert/cadcopilot/internal/ui/modals"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

func lastMessage(m *Model) workflow.Message {
	msgs := m.ctrl.Messages()
	return msgs[len(msgs)-1]
}

func TestNew_Welcome(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	msgs := m.ctrl.Messages()
	if len(msgs) != 1 || msgs[0].Text != workflow.WelcomeText {
		t.Fatalf("messages = %+v, want the welcome text", msgs)
	}
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want input", m.Focus())
	}
	if m.ctrl.Panel() != workflow.PanelNone {
		t.Errorf("panel = %v, want none", m.ctrl.Panel())
	}
}

func TestInit_FetchesContext(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	drain(m, m.Init())

	dc := m.ctrl.DocumentContext()
	if dc == nil || dc.DocumentName != "Unsaved Design" {
		t.Fatalf("DocumentContext() = %+v", dc)
	}
	if !strings.Contains(screen(m), "Unsaved Design") {
		t.Error("header should show the document name")
	}
}

func TestSubmit_ShowsProposal(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "Create a parametric bracket")

	if m.ctrl.State() != workflow.ReviewingCode {
		t.Fatalf("state = %v, want ReviewingCode", m.ctrl.State())
	}
	if m.ctrl.Panel() != workflow.PanelCode {
		t.Errorf("panel = %v, want code", m.ctrl.Panel())
	}
	if m.Focus() != FocusPanel {
		t.Errorf("focus = %v, want panel", m.Focus())
	}
	if got := m.ctrl.Session().Title; got != bridge.BracketTitle {
		t.Errorf("title = %q", got)
	}
	if m.chat.GetInput() != "" {
		t.Error("input should be cleared after a submit")
	}
	for _, msg := range m.ctrl.Messages() {
		if msg.Transient {
			t.Error("placeholder left in the log")
		}
	}
	if !strings.Contains(screen(m), bridge.BracketTitle) {
		t.Error("code panel not rendered")
	}
}

func TestSubmit_BlankInputIgnored(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	before := len(m.ctrl.Messages())

	typeText(m, "   ")
	sendKey(m, keys.Enter)

	if got := len(m.ctrl.Messages()); got != before {
		t.Errorf("messages = %d, want %d", got, before)
	}
	if m.ctrl.State() != workflow.Idle {
		t.Errorf("state = %v, want Idle", m.ctrl.State())
	}
}

func TestSubmit_RefusedWhileBusy(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	typeText(m, "first")
	pending := sendKeyNoDrain(m, keys.Enter)
	if !m.ctrl.Busy() {
		t.Fatal("expected a generation in flight")
	}

	typeText(m, "second")
	sendKey(m, keys.Enter)
	if got := lastMessage(m).Text; got != workflow.BusyText {
		t.Errorf("last message = %q, want busy notice", got)
	}
	if m.chat.GetInput() != "second" {
		t.Errorf("refused input should stay in the box, got %q", m.chat.GetInput())
	}

	drain(m, pending)
	if m.ctrl.State() != workflow.ReviewingCode {
		t.Errorf("state = %v, want ReviewingCode", m.ctrl.State())
	}
}

func TestApply_Success(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")
	sendKey(m, "a")

	if m.ctrl.State() != workflow.Succeeded {
		t.Fatalf("state = %v, want Succeeded", m.ctrl.State())
	}
	if m.ctrl.Panel() != workflow.PanelExecution {
		t.Errorf("panel = %v, want execution", m.ctrl.Panel())
	}
	if got := m.execPanel.OutputLines(); len(got) != 3 {
		t.Errorf("output lines = %d, want 3", len(got))
	}
	if env.fixture.Executions() != 1 {
		t.Errorf("executions = %d, want 1", env.fixture.Executions())
	}
	if dc := m.ctrl.DocumentContext(); dc == nil || dc.ParameterCount != 3 {
		t.Errorf("context not refreshed after execution: %+v", dc)
	}
}

func TestClose_ReturnsToInput(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")
	sendKey(m, "a")
	sendKey(m, "x")

	if m.ctrl.State() != workflow.Idle {
		t.Errorf("state = %v, want Idle", m.ctrl.State())
	}
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want input", m.Focus())
	}
}

func TestUndo(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")
	sendKey(m, "a")
	sendKey(m, "u")

	if m.ctrl.State() != workflow.Idle {
		t.Errorf("state = %v, want Idle", m.ctrl.State())
	}
	if env.fixture.Executions() != 0 {
		t.Errorf("executions = %d after undo, want 0", env.fixture.Executions())
	}
	found := false
	for _, msg := range m.ctrl.Messages() {
		if msg.Text == workflow.UndoneText {
			found = true
		}
	}
	if !found {
		t.Error("missing undo notice")
	}
}

func TestFailure_FixAndRetry(t *testing.T) {
	env := newTestEnv(t)
	env.fixture.FailExecution = true
	m := submit(env.model, "bracket")
	sendKey(m, "a")

	if m.ctrl.State() != workflow.Failed {
		t.Fatalf("state = %v, want Failed", m.ctrl.State())
	}
	if m.ctrl.Panel() != workflow.PanelError {
		t.Errorf("panel = %v, want error", m.ctrl.Panel())
	}
	if r := m.ctrl.Report(); r == nil || len(r.Suggestions) == 0 {
		t.Errorf("report = %+v, want suggestions", r)
	}

	sendKey(m, "t")
	if !m.errorPanel.TraceExpanded() {
		t.Error("t should expand the stack trace")
	}

	sendKey(m, "f")
	if m.ctrl.State() != workflow.ReviewingCode {
		t.Fatalf("state after fix = %v, want ReviewingCode", m.ctrl.State())
	}
	if m.ctrl.Patch() == nil || m.ctrl.Patch().Empty() {
		t.Fatal("fix should record a patch")
	}
	sendKey(m, "d")
	if !m.codePanel.ShowingPatch() {
		t.Error("d should show the patch")
	}

	sendKey(m, "a")
	if m.ctrl.State() != workflow.Succeeded {
		t.Errorf("fixed code should run, state = %v", m.ctrl.State())
	}
}

func TestReject(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")
	sendKey(m, "r")

	if m.ctrl.State() != workflow.Idle {
		t.Errorf("state = %v, want Idle", m.ctrl.State())
	}
	if m.ctrl.Session().HasCode() {
		t.Error("reject should clear the code")
	}
	if lastMessage(m).Text != workflow.RejectedText {
		t.Errorf("last message = %q", lastMessage(m).Text)
	}
}

func TestExplain_AppendsOneMessage(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")
	before := len(m.ctrl.Messages())
	sendKey(m, "e")

	msgs := m.ctrl.Messages()
	if len(msgs) != before+1 {
		t.Fatalf("messages = %d, want %d", len(msgs), before+1)
	}
	last := msgs[len(msgs)-1]
	if last.Role != workflow.RoleAssistant || !strings.Contains(last.Text, bridge.BracketNotes) {
		t.Errorf("explanation = %+v", last)
	}
}

func TestCopy(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")
	before := m.ctrl.Session()

	_, _ = m.Update(keyPress("c"))

	if env.clip.Text() != bridge.BracketCode {
		t.Error("clipboard should hold the code")
	}
	if !m.codePanel.Copied() {
		t.Error("copy confirmation should show")
	}
	if !m.footer.HasFlash() {
		t.Error("expected a flash")
	}
	after := m.ctrl.Session()
	if after.Code != before.Code || after.Title != before.Title || m.ctrl.State() != workflow.ReviewingCode {
		t.Error("copy must not change the session")
	}
}

func TestCopy_ClipboardError(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Clipboard = &clipboard.Memory{Err: errHostDown}
	})
	m := submit(env.model, "bracket")
	before := len(m.ctrl.Messages())
	m = sendKey(m, "c")

	if m.codePanel.Copied() {
		t.Error("failed copy should not show the confirmation")
	}
	if !strings.Contains(m.footer.FlashText(), "Could not copy") {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
	if got := systemMessagesSince(m, before); len(got) != 1 || !strings.Contains(got[0].Text, workflow.CopyFailedText) {
		t.Errorf("new system messages = %+v", got)
	}
	if m.ctrl.State() != workflow.ReviewingCode {
		t.Errorf("state = %v, want ReviewingCode", m.ctrl.State())
	}
}

func TestInit_ContextFailure(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Bridge = failingBridge{err: errHostDown}
	})
	m := env.model
	before := len(m.ctrl.Messages())
	drain(m, m.Init())

	got := systemMessagesSince(m, before)
	if len(got) != 1 {
		t.Fatalf("new system messages = %+v", got)
	}
	if !strings.Contains(got[0].Text, workflow.NoContextText) || !strings.Contains(got[0].Text, errHostDown.Error()) {
		t.Errorf("system message = %q", got[0].Text)
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
	if m.ctrl.State() != workflow.Idle {
		t.Errorf("state = %v, want Idle", m.ctrl.State())
	}
}

func systemMessagesSince(m *Model, n int) []workflow.Message {
	var out []workflow.Message
	for _, msg := range m.ctrl.Messages()[n:] {
		if msg.Role == workflow.RoleSystem {
			out = append(out, msg)
		}
	}
	return out
}

func TestAutoRun(t *testing.T) {
	env := newTestEnv(t)
	if err := env.store.Save(settings.Settings{Model: settings.ModelOpenAI, AutoRun: true}); err != nil {
		t.Fatal(err)
	}
	env.model = New(Options{Bridge: env.fixture, Store: env.store, Clipboard: env.clip})
	t.Cleanup(env.model.Close)
	m := setSize(env.model, 120, 40)

	submit(m, "bracket")
	if m.ctrl.State() != workflow.Succeeded {
		t.Errorf("state = %v, want Succeeded", m.ctrl.State())
	}
}

func TestBridgeFailure(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Bridge = failingBridge{err: errHostDown}
	})
	m := submit(env.model, "bracket")

	if m.ctrl.State() != workflow.Idle {
		t.Errorf("state = %v, want Idle", m.ctrl.State())
	}
	if !strings.Contains(lastMessage(m).Text, errHostDown.Error()) {
		t.Errorf("last message = %q", lastMessage(m).Text)
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
	found := false
	for _, msg := range m.ctrl.Messages() {
		if msg.Role == workflow.RoleUser && msg.Text == "bracket" {
			found = true
		}
	}
	if !found {
		t.Error("the prompt should stay in the log")
	}
	if got := m.chat.GetInput(); got != "bracket" {
		t.Errorf("input = %q, want the failed prompt back", got)
	}
}

func TestBridgeFailure_KeepsNewInput(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Bridge = failingBridge{err: errHostDown}
	})
	m := typeText(env.model, "bracket")
	cmd := sendKeyNoDrain(m, keys.Enter)
	typeText(m, "gear")
	drain(m, cmd)

	if m.ctrl.State() != workflow.Idle {
		t.Fatalf("state = %v, want Idle", m.ctrl.State())
	}
	if got := m.chat.GetInput(); got != "gear" {
		t.Errorf("input = %q, want the newer text kept", got)
	}
}

func TestTab_TogglesFocus(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	sendKey(m, keys.Tab)
	if m.Focus() != FocusInput {
		t.Error("tab without a panel should keep input focus")
	}

	submit(m, "bracket")
	sendKey(m, keys.Tab)
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want input", m.Focus())
	}
	typeText(m, "a")
	if m.ctrl.State() != workflow.ReviewingCode {
		t.Error("typing in the input must not trigger panel shortcuts")
	}
	sendKey(m, keys.Tab)
	if m.Focus() != FocusPanel {
		t.Errorf("focus = %v, want panel", m.Focus())
	}
	sendKey(m, keys.Escape)
	if m.Focus() != FocusInput {
		t.Errorf("esc should return to the input, focus = %v", m.Focus())
	}
}

func TestSettings_SaveAndCancel(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	sendKey(m, keys.CtrlS)
	if !m.modal.IsVisible() || !m.ctrl.SettingsOpen() {
		t.Fatal("ctrl+s should open settings")
	}
	sendKey(m, keys.Escape)
	if m.modal.IsVisible() || m.ctrl.SettingsOpen() {
		t.Fatal("esc should close settings")
	}
	if env.store.Saves != 0 {
		t.Error("cancel must not save")
	}

	sendKey(m, keys.CtrlS)
	state := m.modal.State.(*modals.SettingsState)
	if state.Values() != m.ctrl.Settings() {
		t.Errorf("form = %+v, want current settings", state.Values())
	}
	sendKey(m, keys.Enter)
	if m.modal.IsVisible() {
		t.Error("enter should close settings")
	}
	if env.store.Saves != 1 {
		t.Errorf("saves = %d, want 1", env.store.Saves)
	}
	if lastMessage(m).Text != workflow.SavedText {
		t.Errorf("last message = %q", lastMessage(m).Text)
	}
}

func TestSettings_EditWithKeys(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	sendKey(m, keys.CtrlS)
	sendKey(m, keys.Down)
	sendKey(m, keys.Tab)
	typeText(m, "/tmp/proj")
	sendKey(m, keys.Tab)
	sendKey(m, " ")
	sendKey(m, keys.Enter)

	if m.modal.IsVisible() {
		t.Fatal("enter should save and close settings")
	}
	want := settings.Settings{Model: settings.ModelAnthropic, ProjectRoot: "/tmp/proj", AutoRun: true}
	saved, err := env.store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved != want {
		t.Errorf("saved = %+v, want %+v", saved, want)
	}
	if m.ctrl.Settings() != want {
		t.Errorf("Settings() = %+v, want %+v", m.ctrl.Settings(), want)
	}
	if !strings.Contains(screen(m), settings.ModelDisplayName(settings.ModelAnthropic)) {
		t.Error("header should show the new model")
	}
}

func TestSlashCommands(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "/help")
	if lastMessage(m).Text != workflow.HelpText {
		t.Error("/help should post the help text")
	}
	if m.ctrl.State() != workflow.Idle {
		t.Error("/help must not start a generation")
	}

	submit(m, "/settings")
	if !m.ctrl.SettingsOpen() {
		t.Error("/settings should open settings")
	}
}

func TestHelpModal_RunsSelectedShortcut(t *testing.T) {
	env := newTestEnv(t)
	m := submit(env.model, "bracket")

	sendKey(m, "?")
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Fatal("? should open the shortcut list")
	}
	sendKey(m, keys.Enter)
	if m.modal.IsVisible() {
		t.Error("enter should close the shortcut list")
	}
	if m.ctrl.State() != workflow.Succeeded {
		t.Errorf("selected shortcut (apply) should run, state = %v", m.ctrl.State())
	}
}

func TestCtrlC_Quits(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	_, cmd := m.Update(keyPress(keys.CtrlC))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("quit should cancel outstanding calls")
	}
}

func TestView_Loading(t *testing.T) {
	m := New(Options{Bridge: bridge.NewInstantFixture(), Store: settings.NewMemoryStore(), Clipboard: &clipboard.Memory{}})
	defer m.Close()
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() = %q before a size is known", got)
	}
}
