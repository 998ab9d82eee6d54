package scenarios

import (
	"time"

	"github.com/zhubert/cadcopilot/internal/demo"
)

// Recovery has the first execution fail, then walks through the stack
// trace, a fix request and the patch before applying the corrected script.
var Recovery = &demo.Scenario{
	Name:          "recovery",
	Description:   "Execution fails, fix and retry",
	FailExecution: true,
	Steps: []demo.Step{
		demo.Pause(time.Second),

		demo.Ask("Make a bracket").Describe("Send a request"),
		demo.Pause(time.Second),

		demo.Press("a").Describe("Apply"),
		demo.Caption("The host reports an error"),
		demo.Pause(1500 * time.Millisecond),

		demo.Press("t").Describe("Expand the stack trace"),
		demo.Pause(1500 * time.Millisecond),

		demo.Caption("Ask for a fix"),
		demo.Press("f").Describe("Fix & Retry"),
		demo.Pause(1500 * time.Millisecond),

		demo.Caption("See what changed"),
		demo.Press("d").Describe("Show diff"),
		demo.Pause(2 * time.Second),

		demo.Press("a").Describe("Apply the fix"),
		demo.Pause(3 * time.Second),
	},
}
