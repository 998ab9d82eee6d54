package app

import (
	"context"
	stderrors "errors"
	"os"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/clipboard"
	"github.com/zhubert/cadcopilot/internal/keys"
	"github.com/zhubert/cadcopilot/internal/logger"
	"github.com/zhubert/cadcopilot/internal/settings"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// cmdTimeout bounds how long drain waits on a command. Timer commands
// (flash and copy confirmations) outlive it and are dropped.
const cmdTimeout = 200 * time.Millisecond

type testEnv struct {
	model   *Model
	fixture *bridge.Fixture
	store   *settings.MemoryStore
	clip    *clipboard.Memory
}

func newTestEnv(t *testing.T, configure ...func(*Options)) *testEnv {
	t.Helper()
	env := &testEnv{
		fixture: bridge.NewInstantFixture(),
		store:   settings.NewMemoryStore(),
		clip:    &clipboard.Memory{},
	}
	opts := Options{
		Bridge:      env.fixture,
		Store:       env.store,
		Clipboard:   env.clip,
		CallTimeout: time.Second,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	env.model = New(opts)
	t.Cleanup(env.model.Close)
	setSize(env.model, 120, 40)
	return env
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press and runs the resulting commands to completion.
func sendKey(m *Model, key string) *Model {
	_, cmd := m.Update(keyPress(key))
	drain(m, cmd)
	return m
}

// sendKeyNoDrain sends a key press and returns its command unexecuted.
func sendKeyNoDrain(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		_, _ = m.Update(keyPress(string(ch)))
	}
	return m
}

// submit types text and presses enter.
func submit(m *Model, text string) *Model {
	typeText(m, text)
	return sendKey(m, keys.Enter)
}

// screen renders the model without ANSI styling.
func screen(m *Model) string {
	return ansi.Strip(m.RenderToString())
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	_, _ = m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// drain executes cmd, feeds every resulting message back into the model and
// repeats until nothing is left.
func drain(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		msg, ok := run(c)
		if !ok || msg == nil {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func run(cmd tea.Cmd) (tea.Msg, bool) {
	if cmd == nil {
		return nil, false
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// failingBridge fails every call.
type failingBridge struct {
	err error
}

func (b failingBridge) Generate(context.Context, bridge.GenerateRequest) (bridge.GenerateResponse, error) {
	return bridge.GenerateResponse{}, b.err
}

func (b failingBridge) Execute(context.Context, string) (bridge.ExecutionResult, error) {
	return bridge.ExecutionResult{}, b.err
}

func (b failingBridge) Fix(context.Context, bridge.FixRequest) (bridge.GenerateResponse, error) {
	return bridge.GenerateResponse{}, b.err
}

func (b failingBridge) Explain(context.Context, string, string) (string, error) {
	return "", b.err
}

func (b failingBridge) Undo(context.Context) error { return b.err }

func (b failingBridge) Context(context.Context) (bridge.DocumentContext, error) {
	return bridge.DocumentContext{}, b.err
}

var errHostDown = stderrors.New("host not responding")
