package demo

import (
	"errors"
	"testing"
	"time"
)

func TestScenarioValidate(t *testing.T) {
	steps := []Step{Pause(time.Second)}

	tests := []struct {
		name       string
		scenario   *Scenario
		wantField  string
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "explicit size",
			scenario:   &Scenario{Name: "test", Width: 100, Height: 30, Steps: steps},
			wantWidth:  100,
			wantHeight: 30,
		},
		{
			name:       "default size",
			scenario:   &Scenario{Name: "test", Steps: steps},
			wantWidth:  DefaultWidth,
			wantHeight: DefaultHeight,
		},
		{name: "missing name", scenario: &Scenario{Steps: steps}, wantField: "Name"},
		{name: "no steps", scenario: &Scenario{Name: "test"}, wantField: "Steps"},
		{name: "empty key", scenario: &Scenario{Name: "test", Steps: []Step{Pause(0), Press("")}}, wantField: "Steps[1]"},
		{name: "empty prompt", scenario: &Scenario{Name: "test", Steps: []Step{Ask("")}}, wantField: "Steps[0]"},
		{name: "negative hold", scenario: &Scenario{Name: "test", Steps: []Step{Pause(-time.Second)}}, wantField: "Steps[0]"},
		{name: "unknown action", scenario: &Scenario{Name: "test", Steps: []Step{{Action: Action(42)}}}, wantField: "Steps[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if tt.wantField != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Validate() error = %v, want *ValidationError", err)
				}
				if ve.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.scenario.Width != tt.wantWidth || tt.scenario.Height != tt.wantHeight {
				t.Errorf("size = %dx%d, want %dx%d", tt.scenario.Width, tt.scenario.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestStepBuilders(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want Step
	}{
		{"Pause", Pause(500 * time.Millisecond), Step{Action: ActPause, Hold: 500 * time.Millisecond}},
		{"Press", Press("a"), Step{Action: ActPress, Input: "a"}},
		{"Type", Type("a bracket"), Step{Action: ActType, Input: "a bracket"}},
		{"Ask", Ask("a bracket"), Step{Action: ActAsk, Input: "a bracket"}},
		{"Snapshot", Snapshot(), Step{Action: ActSnapshot}},
		{"Caption", Caption("Review"), Step{Action: ActCaption, Input: "Review"}},
		{"Describe", Press("a").Describe("Apply"), Step{Action: ActPress, Input: "a", Note: "Apply"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.step != tt.want {
				t.Errorf("got %+v, want %+v", tt.step, tt.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if got := ActAsk.String(); got != "ask" {
		t.Errorf("ActAsk.String() = %q, want ask", got)
	}
	if got := Action(42).String(); got != "action(42)" {
		t.Errorf("Action(42).String() = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "Name", Message: "is required"}
	if got, want := err.Error(), "invalid Name: is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
