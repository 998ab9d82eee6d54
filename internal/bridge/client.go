package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/zhubert/cadcopilot/internal/errors"
	"github.com/zhubert/cadcopilot/internal/logger"
)

// ErrClosed is returned for calls made after the connection has gone away.
var ErrClosed = stderrors.New("bridge connection closed")

// Client is a Bridge that speaks JSON-RPC 2.0 over a pair of streams, one
// message per line. Responses are matched to requests by id, so a Client
// is safe for concurrent use.
type Client struct {
	writer *bufio.Writer
	wmu    sync.Mutex

	mu      sync.Mutex
	pending map[string]chan rpcResponse
	done    chan struct{}
	readErr error

	log *slog.Logger
}

// NewClient starts reading responses from r and returns a client that
// writes requests to w.
func NewClient(r io.Reader, w io.Writer) *Client {
	c := &Client{
		writer:  bufio.NewWriter(w),
		pending: make(map[string]chan rpcResponse),
		done:    make(chan struct{}),
		log:     logger.WithComponent("rpc-client"),
	}
	go c.readLoop(bufio.NewReader(r))
	return c
}

func (c *Client) readLoop(r *bufio.Reader) {
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			c.dispatch(line)
		}
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				err = ErrClosed
			}
			c.shutdown(err)
			return
		}
	}
}

func (c *Client) dispatch(line []byte) {
	var resp rpcResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		c.log.Warn("rpc.invalid_json", "error", err.Error())
		return
	}
	var id string
	if err := json.Unmarshal(resp.ID, &id); err != nil {
		c.log.Warn("rpc.unmatched_response", "id", string(resp.ID))
		return
	}

	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		c.log.Warn("rpc.unknown_id", "id", id)
		return
	}
	ch <- resp
}

func (c *Client) shutdown(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return
	}
	c.readErr = err
	close(c.done)
	c.log.Debug("rpc.closed", "error", err.Error())
}

func (c *Client) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readErr
}

// Call invokes method with params and decodes the result into result.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	if err := c.closedErr(); err != nil {
		return errors.BridgeCallFailed(method, err)
	}

	id := uuid.NewString()
	rawID, _ := json.Marshal(id)
	rawParams, err := json.Marshal(params)
	if err != nil {
		return errors.BridgeCallFailed(method, err)
	}
	data, err := json.Marshal(rpcRequest{JSONRPC: jsonRPCVersion, ID: rawID, Method: method, Params: rawParams})
	if err != nil {
		return errors.BridgeCallFailed(method, err)
	}

	ch := make(chan rpcResponse, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	c.log.Debug("rpc.request", "method", method, "id", id)
	if err := c.write(data); err != nil {
		c.forget(id)
		return errors.BridgeCallFailed(method, err)
	}

	select {
	case resp := <-ch:
		return decodeResult(method, resp, result)
	case <-ctx.Done():
		c.forget(id)
		return callErr(method, ctx.Err())
	case <-c.done:
		// The response may have arrived just before the stream closed.
		select {
		case resp := <-ch:
			return decodeResult(method, resp, result)
		default:
		}
		return errors.BridgeCallFailed(method, c.closedErr())
	}
}

func decodeResult(method string, resp rpcResponse, result any) error {
	if resp.Error != nil {
		return errors.BridgeCallFailed(method, resp.Error)
	}
	if result == nil {
		return nil
	}
	if len(resp.Result) == 0 {
		return errors.BridgeMalformed(method, "missing result")
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return errors.BridgeMalformed(method, err.Error())
	}
	return nil
}

func (c *Client) write(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if _, err := c.writer.Write(append(data, '\n')); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Pending returns the number of calls awaiting a response.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.Call(ctx, MethodGenerate, req, &resp); err != nil {
		return GenerateResponse{}, err
	}
	if resp.Code == "" {
		return GenerateResponse{}, errors.BridgeMalformed(MethodGenerate, "empty code")
	}
	return resp, nil
}

func (c *Client) Execute(ctx context.Context, code string) (ExecutionResult, error) {
	var result ExecutionResult
	if err := c.Call(ctx, MethodExecute, executeParams{Code: code}, &result); err != nil {
		return ExecutionResult{}, err
	}
	if !result.Success && result.Error == "" {
		return ExecutionResult{}, errors.BridgeMalformed(MethodExecute, "failure without error message")
	}
	return result, nil
}

func (c *Client) Fix(ctx context.Context, req FixRequest) (GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.Call(ctx, MethodFix, req, &resp); err != nil {
		return GenerateResponse{}, err
	}
	if resp.Code == "" {
		return GenerateResponse{}, errors.BridgeMalformed(MethodFix, "empty code")
	}
	return resp, nil
}

func (c *Client) Explain(ctx context.Context, code, title string) (string, error) {
	var result explainResult
	if err := c.Call(ctx, MethodExplain, explainParams{Code: code, Title: title}, &result); err != nil {
		return "", err
	}
	return result.Explanation, nil
}

func (c *Client) Undo(ctx context.Context) error {
	var result undoResult
	return c.Call(ctx, MethodUndo, struct{}{}, &result)
}

func (c *Client) Context(ctx context.Context) (DocumentContext, error) {
	var dc DocumentContext
	if err := c.Call(ctx, MethodContext, struct{}{}, &dc); err != nil {
		return DocumentContext{}, err
	}
	return dc, nil
}
