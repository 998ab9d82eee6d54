// Package scenarios holds the built-in demo recordings.
package scenarios

import (
	"time"

	"github.com/zhubert/cadcopilot/internal/demo"
)

// Basic is the happy path: describe a part, read the proposal, ask for an
// explanation, apply the script and close the result.
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Generate a bracket, review it, apply it",
	Steps: []demo.Step{
		demo.Pause(time.Second),

		demo.Caption("Describe the part"),
		demo.Ask("Create a parametric bracket with mounting holes").Describe("Send a request"),
		demo.Pause(1500 * time.Millisecond),

		demo.Caption("Review the generated script"),
		demo.Snapshot(),
		demo.Press("down"),
		demo.Press("down"),
		demo.Pause(800 * time.Millisecond),

		demo.Caption("Ask what it does"),
		demo.Press("e").Describe("Explain"),
		demo.Pause(1500 * time.Millisecond),

		demo.Caption("Apply it to the document"),
		demo.Press("a").Describe("Apply"),
		demo.Pause(2 * time.Second),

		demo.Press("x").Describe("Close the result"),
		demo.Pause(3 * time.Second),
	},
}

var builtin = []*demo.Scenario{Basic, Recovery}

// All returns the built-in scenarios in listing order.
func All() []*demo.Scenario {
	return builtin
}

// Get returns the named scenario, or nil.
func Get(name string) *demo.Scenario {
	for _, s := range builtin {
		if s.Name == name {
			return s
		}
	}
	return nil
}
