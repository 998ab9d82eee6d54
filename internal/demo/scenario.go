// Package demo replays scripted sessions against the copilot panel and
// records the rendered frames. It drives the same model the TUI runs,
// backed by the instant fixture bridge, so recordings are deterministic
// and need no CAD host.
package demo

import (
	"fmt"
	"time"
)

// Default terminal size for scenarios that leave it unset.
const (
	DefaultWidth  = 120
	DefaultHeight = 40
)

// Action is what a Step does to the panel.
type Action int

const (
	ActPause    Action = iota // hold the screen and record a frame
	ActPress                  // one key press
	ActType                   // one key press per rune of Input
	ActAsk                    // type Input, then send it with enter
	ActSnapshot               // record a frame with no hold
	ActCaption                // caption the next recorded frame
)

var actionNames = [...]string{"pause", "press", "type", "ask", "snapshot", "caption"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Step is one scripted action.
type Step struct {
	Action Action
	Input  string        // key, text or caption
	Hold   time.Duration // ActPause only
	Note   string        // shown by demo listings
}

func Pause(d time.Duration) Step { return Step{Action: ActPause, Hold: d} }
func Press(key string) Step      { return Step{Action: ActPress, Input: key} }
func Type(text string) Step      { return Step{Action: ActType, Input: text} }
func Ask(prompt string) Step     { return Step{Action: ActAsk, Input: prompt} }
func Snapshot() Step             { return Step{Action: ActSnapshot} }
func Caption(text string) Step   { return Step{Action: ActCaption, Input: text} }

// Describe returns s with a note attached.
func (s Step) Describe(note string) Step {
	s.Note = note
	return s
}

func (s Step) check() error {
	switch s.Action {
	case ActPause:
		if s.Hold < 0 {
			return fmt.Errorf("negative hold %v", s.Hold)
		}
	case ActPress, ActType, ActAsk, ActCaption:
		if s.Input == "" {
			return fmt.Errorf("%s step has no input", s.Action)
		}
	case ActSnapshot:
	default:
		return fmt.Errorf("unknown %s", s.Action)
	}
	return nil
}

// Scenario is a named script plus the terminal it is recorded in.
type Scenario struct {
	Name        string
	Description string
	Width       int
	Height      int

	// FailExecution makes the fixture report its canned execution error
	// until the code has been through a fix.
	FailExecution bool

	Steps []Step
}

// Validate checks every step and fills in the default terminal size.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if len(s.Steps) == 0 {
		return &ValidationError{Field: "Steps", Message: "scenario has no steps"}
	}
	for i, step := range s.Steps {
		if err := step.check(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("Steps[%d]", i), Message: err.Error()}
		}
	}
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return nil
}

// ValidationError names the scenario field that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}
