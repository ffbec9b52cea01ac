package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/phany/internal/config"
	"github.com/ironsheep/phany/internal/logging"
	"github.com/ironsheep/phany/internal/op"
	"github.com/ironsheep/phany/internal/viewer"
)

// Version is reported by initialize; main overrides it from build flags.
var Version = "dev"

// JSON-RPC error codes.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeExecution      = -32000
)

// Server drives one viewer from JSON-RPC requests on a line-oriented stream.
type Server struct {
	cfg      *config.Config
	viewer   *viewer.Viewer
	registry *op.Registry

	// pending is the decode started by the last open, nil when none.
	pending <-chan viewer.Decoded
	out     *json.Encoder
}

// Request is an incoming JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Notification is an outgoing message without an ID. The server sends
// viewer/loaded or viewer/failed when a decode finishes.
type Notification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server. A nil cfg means config.Default(); a nil registry
// means op.Builtin().
func New(cfg *config.Config, v *viewer.Viewer, registry *op.Registry) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if registry == nil {
		registry = op.Builtin()
	}
	return &Server{cfg: cfg, viewer: v, registry: registry}
}

// Open starts decoding path. The result is delivered by the serve loop.
func (s *Server) Open(ctx context.Context, path string) {
	s.pending = s.viewer.Open(ctx, path)
}

// Run serves stdin and stdout until stdin closes or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one request per line from r and writes responses and
// notifications to w. Requests and decode completions are handled on the
// calling goroutine, one at a time.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	defer s.viewer.Close()
	s.out = json.NewEncoder(w)

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		// Increase buffer size for large requests
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	log := logging.Logger()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case d, ok := <-s.pending:
			s.pending = nil
			if ok {
				s.complete(d)
			}

		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}

			var req Request
			if err := json.Unmarshal(line, &req); err != nil {
				log.Warn("failed to parse request", "error", err)
				continue
			}
			if resp := s.handleRequest(ctx, &req); resp != nil {
				s.send(resp)
			}
		}
	}
}

// complete hands a finished decode to the viewer and notifies the client.
func (s *Server) complete(d viewer.Decoded) {
	if !s.viewer.Complete(d) {
		return
	}
	if err := s.viewer.Err(); err != nil {
		s.send(&Notification{
			JSONRPC: "2.0",
			Method:  "viewer/failed",
			Params:  map[string]interface{}{"path": d.Path, "error": err.Error()},
		})
		return
	}
	s.send(&Notification{
		JSONRPC: "2.0",
		Method:  "viewer/loaded",
		Params: map[string]interface{}{
			"path":  d.Path,
			"title": s.viewer.Title(),
			"info":  s.viewer.Info(),
		},
	})
}

func (s *Server) send(v interface{}) {
	if s.out == nil {
		return
	}
	if err := s.out.Encode(v); err != nil {
		logging.Logger().Error("failed to encode response", "error", err)
	}
}

// handleRequest routes requests to their handlers. Notifications from the
// client get no response.
func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	logging.Logger().Debug("request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return s.result(req, s.initializeResult())
	case "notifications/initialized":
		return nil
	case "ping":
		return s.result(req, map[string]interface{}{})
	}

	h, ok := s.methods()[req.Method]
	if !ok {
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
	result, err := h(ctx, req.Params)
	if err != nil {
		var pe *paramsError
		if errors.As(err, &pe) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", pe.Error())
		}
		return s.errorResponse(req.ID, codeExecution, "Method execution failed", err.Error())
	}
	return s.result(req, result)
}

func (s *Server) initializeResult() map[string]interface{} {
	return map[string]interface{}{
		"serverInfo": map[string]interface{}{
			"name":    viewer.AppName,
			"version": Version,
		},
		"methods": GetMethodDefinitions(),
	}
}

func (s *Server) result(req *Request, v interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: v}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *Response {
	e := &RPCError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &Response{JSONRPC: "2.0", ID: id, Error: e}
}
