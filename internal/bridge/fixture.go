package bridge

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/cadcopilot/internal/errors"
	"github.com/zhubert/cadcopilot/internal/logger"
)

// Default fixture delays, matching a slow remote backend.
const (
	DefaultGenerateDelay = 2 * time.Second
	DefaultExecuteDelay  = 1500 * time.Millisecond
	DefaultFixDelay      = 1500 * time.Millisecond
)

// BracketTitle is the title of the canned generation response.
const BracketTitle = "Create Parametric Bracket"

// BracketPlan is the plan of the canned generation response.
var BracketPlan = []string{
	"Create user parameters (width, height, thickness)",
	"Create a sketch on XY plane",
	"Draw rectangle using parameters",
	"Extrude sketch with thickness parameter",
	"Name features for future edits",
}

// BracketCode is the code of the canned generation response.
const BracketCode = `# Create a parametric bracket
def create_bracket(doc):
    design = doc.design
    root = design.rootComponent

    # Create user parameters
    params = design.userParameters
    try:
        width_param = params.itemByName('Width')
    except:
        width_param = params.add('Width', adsk.core.ValueInput.createByReal(100), 'mm')

    try:
        height_param = params.itemByName('Height')
    except:
        height_param = params.add('Height', adsk.core.ValueInput.createByReal(50), 'mm')

    try:
        thickness_param = params.itemByName('Thickness')
    except:
        thickness_param = params.add('Thickness', adsk.core.ValueInput.createByReal(10), 'mm')

    print("Parameters created successfully")
    return True

# Execute
create_bracket(doc)`

// BracketNotes are the notes of the canned generation response.
const BracketNotes = "This creates a parametric bracket. You can adjust width, height, and thickness parameters later. All features are named for easy editing."

// BracketOutput is what a successful fixture execution reports.
var BracketOutput = []string{
	"Created 3 user parameters: Width, Height, Thickness",
	`Sketch "Bracket Profile" created on XY plane`,
	`Feature "BracketExtrude" created`,
}

// FixedTitle and FixedNotes describe the canned fix response.
const (
	FixedTitle = "Fixed: Parametric Bracket"
	FixedNotes = "Added null check before accessing design"
)

// FixtureError is the message a failing fixture execution reports.
const FixtureError = "AttributeError: 'NoneType' object has no attribute 'sketchCurves'"

const fixtureTrace = `Traceback (most recent call last):
  File "<generated>", line 36, in <module>
    create_bracket(doc)
  File "<generated>", line 4, in create_bracket
    root = design.rootComponent
AttributeError: 'NoneType' object has no attribute 'sketchCurves'`

const nullGuard = "    if doc is None or doc.design is None:\n        return False\n"

// Fixture is an in-process Bridge that returns canned responses after
// fixed delays. It stands in for a host when none is configured.
type Fixture struct {
	GenerateDelay time.Duration
	ExecuteDelay  time.Duration
	FixDelay      time.Duration

	// FailExecution makes Execute report the canned AttributeError until
	// the code has been through Fix.
	FailExecution bool

	mu       sync.Mutex
	executed int
	fixed    map[string]bool
}

// NewFixture returns a fixture bridge with the default delays.
func NewFixture() *Fixture {
	return &Fixture{
		GenerateDelay: DefaultGenerateDelay,
		ExecuteDelay:  DefaultExecuteDelay,
		FixDelay:      DefaultFixDelay,
	}
}

// NewInstantFixture returns a fixture bridge with no delays.
func NewInstantFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	logger.WithComponent("fixture").Debug("generate", "prompt", req.Prompt)
	if err := wait(ctx, "generate", f.GenerateDelay); err != nil {
		return GenerateResponse{}, err
	}
	return GenerateResponse{
		Title: BracketTitle,
		Plan:  append([]string(nil), BracketPlan...),
		Code:  BracketCode,
		Notes: BracketNotes,
	}, nil
}

func (f *Fixture) Execute(ctx context.Context, code string) (ExecutionResult, error) {
	if err := wait(ctx, "execute", f.ExecuteDelay); err != nil {
		return ExecutionResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailExecution && !f.fixed[code] {
		return WithSuggestions(Failed(ErrorReport{
			Message:    FixtureError,
			StackTrace: fixtureTrace,
		})), nil
	}
	f.executed++
	return ExecutionResult{Success: true, Output: append([]string(nil), BracketOutput...)}, nil
}

func (f *Fixture) Fix(ctx context.Context, req FixRequest) (GenerateResponse, error) {
	if err := wait(ctx, "fix", f.FixDelay); err != nil {
		return GenerateResponse{}, err
	}

	code := strings.ReplaceAll(req.Code, "root.sketchCurves", "sketch.sketchCurves")
	code = insertNullGuard(code)

	f.mu.Lock()
	if f.fixed == nil {
		f.fixed = make(map[string]bool)
	}
	f.fixed[code] = true
	f.mu.Unlock()

	return GenerateResponse{
		Title: FixedTitle,
		Plan:  req.Plan,
		Code:  code,
		Notes: FixedNotes,
	}, nil
}

var defPattern = regexp.MustCompile(`(?m)^def (\w+)\(`)

func (f *Fixture) Explain(ctx context.Context, code, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.BridgeCallFailed("explain", err)
	}
	var funcs []string
	for _, m := range defPattern.FindAllStringSubmatch(code, -1) {
		funcs = append(funcs, m[1])
	}
	lines := strings.Count(code, "\n") + 1
	if len(funcs) == 0 {
		return fmt.Sprintf("%q is a %d-line script run directly against the active document.", title, lines), nil
	}
	return fmt.Sprintf("%q is a %d-line script defining %s and running it against the active document.",
		title, lines, strings.Join(funcs, ", ")), nil
}

func (f *Fixture) Undo(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.BridgeCallFailed("undo", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.executed > 0 {
		f.executed--
	}
	return nil
}

func (f *Fixture) Context(ctx context.Context) (DocumentContext, error) {
	if err := ctx.Err(); err != nil {
		return DocumentContext{}, errors.BridgeCallFailed("context", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	params := 0
	if f.executed > 0 {
		params = 3
	}
	return DocumentContext{
		DocumentName:   "Unsaved Design",
		Units:          "mm",
		SelectionCount: 0,
		ParameterCount: params,
	}, nil
}

// Executions returns the number of successful executions not yet undone.
func (f *Fixture) Executions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.executed
}

// insertNullGuard adds an early return after the first function header
// unless one is already present.
func insertNullGuard(code string) string {
	if strings.Contains(code, nullGuard) {
		return code
	}
	loc := defPattern.FindStringIndex(code)
	if loc == nil {
		return code
	}
	end := strings.IndexByte(code[loc[1]:], '\n')
	if end < 0 {
		return code
	}
	at := loc[1] + end + 1
	return code[:at] + nullGuard + code[at:]
}

func wait(ctx context.Context, method string, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return callErr(method, err)
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return callErr(method, ctx.Err())
	}
}

func callErr(method string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.BridgeTimeout(method, err)
	}
	return errors.BridgeCallFailed(method, err)
}
