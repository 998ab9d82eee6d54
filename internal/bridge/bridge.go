// Package bridge connects the panel to the CAD host.
//
// The host owns code generation, execution and undo. The panel reaches it
// through the Bridge interface: either the in-process Fixture, which returns
// canned responses after fixed delays, or a Client speaking line-delimited
// JSON-RPC 2.0 to a host process over stdio.
package bridge

import "context"

// Bridge is the set of operations the panel needs from the host.
type Bridge interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Execute(ctx context.Context, code string) (ExecutionResult, error)
	Fix(ctx context.Context, req FixRequest) (GenerateResponse, error)
	Explain(ctx context.Context, code, title string) (string, error)
	Undo(ctx context.Context) error
	Context(ctx context.Context) (DocumentContext, error)
}

// GenerateRequest asks the host for code implementing a natural-language prompt.
type GenerateRequest struct {
	Prompt      string           `json:"prompt"`
	Context     *DocumentContext `json:"context,omitempty"`
	Model       string           `json:"model,omitempty"`
	ProjectRoot string           `json:"project_root,omitempty"`
}

// GenerateResponse is a proposed change: title, plan, code and notes.
type GenerateResponse struct {
	Title string   `json:"title"`
	Plan  []string `json:"plan"`
	Code  string   `json:"code"`
	Notes string   `json:"notes"`
}

// ErrorReport describes a failed execution.
type ErrorReport struct {
	Message     string   `json:"error"`
	StackTrace  string   `json:"stack_trace,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ExecutionResult is the outcome of running code in the host. A failed
// execution is a result, not an error: Success is false and the report
// fields are set.
type ExecutionResult struct {
	Success     bool     `json:"success"`
	Output      []string `json:"output,omitempty"`
	Error       string   `json:"error,omitempty"`
	StackTrace  string   `json:"stack_trace,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report returns the failure fields as an ErrorReport.
func (r ExecutionResult) Report() ErrorReport {
	return ErrorReport{Message: r.Error, StackTrace: r.StackTrace, Suggestions: r.Suggestions}
}

// Failed builds a failed ExecutionResult from a report.
func Failed(report ErrorReport) ExecutionResult {
	return ExecutionResult{
		Error:       report.Message,
		StackTrace:  report.StackTrace,
		Suggestions: report.Suggestions,
	}
}

// FixRequest asks the host to repair code that failed to execute.
type FixRequest struct {
	Code  string      `json:"code"`
	Title string      `json:"title,omitempty"`
	Plan  []string    `json:"plan,omitempty"`
	Error ErrorReport `json:"error"`
}

// DocumentContext summarizes the active host document.
type DocumentContext struct {
	DocumentName   string `json:"document_name"`
	Units          string `json:"units"`
	SelectionCount int    `json:"selection_count"`
	ParameterCount int    `json:"parameter_count"`
}
