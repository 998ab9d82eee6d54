package demo

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/app"
	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/clipboard"
	"github.com/zhubert/cadcopilot/internal/keys"
	"github.com/zhubert/cadcopilot/internal/logger"
	"github.com/zhubert/cadcopilot/internal/settings"
)

// firstFrameHold is how long the opening screen stays up.
const firstFrameHold = 500 * time.Millisecond

// Frame is one recorded screen.
type Frame struct {
	Content string        // rendered view, ANSI included
	Delay   time.Duration // time since the previous frame
	Caption string
	Step    int // index of the step that recorded it
}

// Options tunes a Recorder.
type Options struct {
	// EveryStep records a frame after each key press as well as at
	// pauses and snapshots.
	EveryStep bool

	KeyDelay  time.Duration
	TypeDelay time.Duration

	// CommandTimeout bounds each command the model returns. Timer
	// commands outlive it and are dropped.
	CommandTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		KeyDelay:       100 * time.Millisecond,
		TypeDelay:      50 * time.Millisecond,
		CommandTimeout: 200 * time.Millisecond,
	}
}

// Recorder plays a Scenario against a fresh app model.
type Recorder struct {
	opts    Options
	model   *app.Model
	frames  []Frame
	caption string
}

func NewRecorder(opts Options) *Recorder {
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = DefaultOptions().CommandTimeout
	}
	return &Recorder{opts: opts}
}

// Record validates s, plays it and returns the frames. The model is built
// over in-memory settings and clipboard, so nothing on disk changes.
func (r *Recorder) Record(s *Scenario) ([]Frame, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fixture := bridge.NewInstantFixture()
	fixture.FailExecution = s.FailExecution
	r.model = app.New(app.Options{
		Bridge:      fixture,
		Store:       settings.NewMemoryStore(),
		Clipboard:   &clipboard.Memory{},
		CallTimeout: time.Second,
		Version:     "demo",
	})
	defer r.model.Close()
	r.frames, r.caption = nil, ""

	r.settle(r.model.Init())
	r.settle(r.send(tea.WindowSizeMsg{Width: s.Width, Height: s.Height}))
	logger.WithComponent("demo").Debug("recording scenario",
		"name", s.Name, "steps", len(s.Steps), "width", s.Width, "height", s.Height)

	r.snap(0, firstFrameHold)
	for i, step := range s.Steps {
		r.play(i, step)
	}
	return r.frames, nil
}

func (r *Recorder) play(i int, step Step) {
	switch step.Action {
	case ActPause:
		r.snap(i, step.Hold)
	case ActSnapshot:
		r.snap(i, 0)
	case ActCaption:
		r.caption = step.Input
	case ActPress:
		r.press(i, step.Input, r.opts.KeyDelay)
	case ActType, ActAsk:
		for _, ch := range step.Input {
			r.press(i, string(ch), r.opts.TypeDelay)
		}
		if step.Action == ActAsk {
			r.press(i, keys.Enter, r.opts.KeyDelay)
		}
	}
}

// press sends key, recording the screen before its commands settle when
// every step is captured.
func (r *Recorder) press(i int, key string, delay time.Duration) {
	cmd := r.send(keyPress(key))
	if r.opts.EveryStep {
		r.snap(i, delay)
	}
	r.settle(cmd)
}

func (r *Recorder) snap(step int, delay time.Duration) {
	r.frames = append(r.frames, Frame{
		Content: r.model.RenderToString(),
		Delay:   delay,
		Caption: r.caption,
		Step:    step,
	})
	r.caption = ""
}

func (r *Recorder) send(msg tea.Msg) tea.Cmd {
	_, cmd := r.model.Update(msg)
	return cmd
}

// settle runs cmd and everything it leads to, feeding each message back
// into the model until nothing is pending.
func (r *Recorder) settle(cmd tea.Cmd) {
	for queue := []tea.Cmd{cmd}; len(queue) > 0; {
		msg := r.await(queue[0])
		queue = queue[1:]
		switch msg := msg.(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, r.send(msg))
		}
	}
}

// await returns nil for a nil command or one that overruns the timeout.
func (r *Recorder) await(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(r.opts.CommandTimeout):
		return nil
	}
}

// keyPress maps the key names used in scenarios to key events.
func keyPress(key string) tea.KeyPressMsg {
	named := map[string]rune{
		keys.Enter:  tea.KeyEnter,
		keys.Tab:    tea.KeyTab,
		keys.Escape: tea.KeyEscape,
		"escape":    tea.KeyEscape,
		keys.Up:     tea.KeyUp,
		keys.Down:   tea.KeyDown,
		keys.PgUp:   tea.KeyPgUp,
		keys.PgDown: tea.KeyPgDown,
	}
	if code, ok := named[key]; ok {
		return tea.KeyPressMsg{Code: code}
	}
	switch key {
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	}
	if r := []rune(key); len(r) == 1 {
		return tea.KeyPressMsg{Code: r[0], Text: key}
	}
	return tea.KeyPressMsg{Text: key}
}
