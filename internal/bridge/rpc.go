package bridge

import (
	"encoding/json"
	"fmt"
)

// Method names of the JSON-RPC protocol.
const (
	MethodGenerate = "generate"
	MethodExecute  = "execute"
	MethodFix      = "fix"
	MethodExplain  = "explain"
	MethodUndo     = "undo"
	MethodContext  = "context"
)

const (
	jsonRPCVersion = "2.0"
	maxMessageSize = 10 * 1024 * 1024
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Parameter and result shapes for methods that don't reuse a bridge type.
type executeParams struct {
	Code string `json:"code"`
}

type explainParams struct {
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
}

type explainResult struct {
	Explanation string `json:"explanation"`
}

type undoResult struct {
	OK bool `json:"ok"`
}
