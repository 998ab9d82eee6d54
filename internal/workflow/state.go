package workflow

import "github.com/zhubert/cadcopilot/internal/bridge"

// State is the position of the panel in the review workflow.
type State int

const (
	Idle State = iota
	AwaitingGeneration
	ReviewingCode
	Executing
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AwaitingGeneration:
		return "AwaitingGeneration"
	case ReviewingCode:
		return "ReviewingCode"
	case Executing:
		return "Executing"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Role identifies who a chat message is from.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "system"
	}
}

// Message is one entry in the chat log.
type Message struct {
	Role Role
	Text string
	// Transient marks the generating placeholder, the only kind of message
	// that is ever removed.
	Transient bool
}

// Panel names the single result panel that may be visible.
type Panel int

const (
	PanelNone Panel = iota
	PanelCode
	PanelExecution
	PanelError
)

func (p Panel) String() string {
	switch p {
	case PanelCode:
		return "code"
	case PanelExecution:
		return "execution"
	case PanelError:
		return "error"
	default:
		return "none"
	}
}

// Session is the proposal under review. It lives until the code is
// rejected or a new request begins.
type Session struct {
	Title     string
	Plan      []string
	Code      string
	Notes     string
	Executing bool
}

// HasCode reports whether there is code to act on.
func (s Session) HasCode() bool {
	return s.Code != ""
}

// Execution is what the execution panel shows.
type Execution struct {
	Pending bool
	Success bool
	Output  []string
}

// CallKind names a bridge operation the app must perform for a transition.
type CallKind int

const (
	CallGenerate CallKind = iota + 1
	CallExecute
	CallFix
	CallUndo
)

func (k CallKind) String() string {
	switch k {
	case CallGenerate:
		return "generate"
	case CallExecute:
		return "execute"
	case CallFix:
		return "fix"
	case CallUndo:
		return "undo"
	default:
		return "none"
	}
}

// Call describes the bridge request a transition needs. The app performs
// it asynchronously and reports back with the matching Complete method or
// with Fail.
type Call struct {
	Kind     CallKind
	Generate bridge.GenerateRequest
	Code     string
	Fix      bridge.FixRequest
}
