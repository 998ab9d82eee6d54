package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/zhubert/cadcopilot/internal/logger"
)

// Handler serves one JSON-RPC method.
type Handler func(ctx context.Context, params json.RawMessage) (any, *RPCError)

// Server reads JSON-RPC requests from a stream and writes responses to
// another, one message per line. Requests are handled concurrently.
type Server struct {
	reader   *bufio.Reader
	writer   *bufio.Writer
	mu       sync.Mutex
	handlers map[string]Handler
	inflight sync.WaitGroup
	log      *slog.Logger
}

// NewServer returns a server with no methods registered.
func NewServer(r io.Reader, w io.Writer) *Server {
	return &Server{
		reader:   bufio.NewReader(r),
		writer:   bufio.NewWriter(w),
		handlers: make(map[string]Handler),
		log:      logger.WithComponent("rpc-server"),
	}
}

// Register binds a handler to a method name.
func (s *Server) Register(method string, handler Handler) {
	s.handlers[method] = handler
}

// Serve handles requests until the input stream ends, then waits for
// in-flight requests to finish.
func (s *Server) Serve(ctx context.Context) error {
	defer s.inflight.Wait()
	for {
		line, err := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			s.handleLine(ctx, line)
		}
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil
			}
			s.log.Error("rpc.read_failed", "error", err.Error())
			return err
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	if len(line) > maxMessageSize {
		s.log.Warn("rpc.message_too_large", "bytes", len(line))
		s.sendError(nil, CodeInvalidRequest, "message too large")
		return
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}
	var req rpcRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("rpc.invalid_json", "error", err.Error())
		s.sendError(nil, CodeParseError, "invalid json")
		return
	}
	if req.JSONRPC != jsonRPCVersion {
		s.log.Warn("rpc.invalid_version", "version", req.JSONRPC)
		s.sendError(req.ID, CodeInvalidRequest, "invalid jsonrpc version")
		return
	}
	handler, ok := s.handlers[req.Method]
	if !ok {
		s.log.Warn("rpc.method_not_found", "method", req.Method)
		s.sendError(req.ID, CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
		return
	}
	s.log.Debug("rpc.request", "method", req.Method, "id", string(req.ID))
	s.inflight.Add(1)
	go s.handleRequest(ctx, req, handler)
}

func (s *Server) handleRequest(ctx context.Context, req rpcRequest, handler Handler) {
	defer s.inflight.Done()
	result, rpcErr := handler(ctx, req.Params)
	if req.ID == nil {
		return
	}
	if rpcErr != nil {
		s.log.Error("rpc.response_error", "method", req.Method, "id", string(req.ID), "error", rpcErr.Message)
		s.sendError(req.ID, rpcErr.Code, rpcErr.Message)
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		s.sendError(req.ID, CodeServerError, err.Error())
		return
	}
	s.send(rpcResponse{JSONRPC: jsonRPCVersion, ID: req.ID, Result: raw})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) {
	s.send(rpcResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}

func (s *Server) send(resp rpcResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_, _ = s.writer.Write(append(data, '\n'))
	_ = s.writer.Flush()
}

// Serve exposes b over the JSON-RPC protocol until r ends.
func Serve(ctx context.Context, b Bridge, r io.Reader, w io.Writer) error {
	s := NewServer(r, w)
	RegisterBridge(s, b)
	return s.Serve(ctx)
}

// RegisterBridge binds every protocol method to b.
func RegisterBridge(s *Server, b Bridge) {
	s.Register(MethodGenerate, func(ctx context.Context, params json.RawMessage) (any, *RPCError) {
		var req GenerateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		resp, err := b.Generate(ctx, req)
		if err != nil {
			return nil, serverErr(err)
		}
		return resp, nil
	})
	s.Register(MethodExecute, func(ctx context.Context, params json.RawMessage) (any, *RPCError) {
		var p executeParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		result, err := b.Execute(ctx, p.Code)
		if err != nil {
			return nil, serverErr(err)
		}
		return WithSuggestions(result), nil
	})
	s.Register(MethodFix, func(ctx context.Context, params json.RawMessage) (any, *RPCError) {
		var req FixRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		resp, err := b.Fix(ctx, req)
		if err != nil {
			return nil, serverErr(err)
		}
		return resp, nil
	})
	s.Register(MethodExplain, func(ctx context.Context, params json.RawMessage) (any, *RPCError) {
		var p explainParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		text, err := b.Explain(ctx, p.Code, p.Title)
		if err != nil {
			return nil, serverErr(err)
		}
		return explainResult{Explanation: text}, nil
	})
	s.Register(MethodUndo, func(ctx context.Context, _ json.RawMessage) (any, *RPCError) {
		if err := b.Undo(ctx); err != nil {
			return nil, serverErr(err)
		}
		return undoResult{OK: true}, nil
	})
	s.Register(MethodContext, func(ctx context.Context, _ json.RawMessage) (any, *RPCError) {
		dc, err := b.Context(ctx)
		if err != nil {
			return nil, serverErr(err)
		}
		return dc, nil
	})
}

func decodeParams(params json.RawMessage, v any) *RPCError {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func serverErr(err error) *RPCError {
	return &RPCError{Code: CodeServerError, Message: err.Error()}
}
