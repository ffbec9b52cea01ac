package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironsheep/phany/internal/imaging"
	"github.com/ironsheep/phany/internal/op"
	"github.com/ironsheep/phany/internal/viewport"
)

type handlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// methods maps JSON-RPC method names to their handlers.
func (s *Server) methods() map[string]handlerFunc {
	return map[string]handlerFunc{
		"viewer/open":   s.handleOpen,
		"viewer/state":  s.handleState,
		"viewer/input":  s.handleInput,
		"viewer/event":  s.handleEvent,
		"viewer/render": s.handleRender,
		"viewer/sample": s.handleSample,
		"viewer/export": s.handleExport,
		"ops/list":      s.handleOpsList,
	}
}

// paramsError marks malformed request parameters.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string { return e.err.Error() }
func (e *paramsError) Unwrap() error { return e.err }

func invalidParams(format string, args ...interface{}) error {
	return &paramsError{err: fmt.Errorf(format, args...)}
}

// decodeParams unmarshals params into v. Missing params leave v untouched.
func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &paramsError{err: err}
	}
	return nil
}

// StateResult describes the viewer as returned by viewer/state and the
// mutating viewer methods.
type StateResult struct {
	Title    string             `json:"title"`
	Filename string             `json:"filename,omitempty"`
	Loading  bool               `json:"loading"`
	Error    string             `json:"error,omitempty"`
	Zoom     string             `json:"zoom"`
	State    viewport.State     `json:"state"`
	Info     *imaging.ImageInfo `json:"info,omitempty"`
}

func (s *Server) stateResult() *StateResult {
	v := s.viewer
	r := &StateResult{
		Title:    v.Title(),
		Filename: v.Filename(),
		Loading:  v.Loading(),
		Zoom:     v.State().Percent(),
		State:    v.State(),
		Info:     v.Info(),
	}
	if err := v.Err(); err != nil {
		r.Error = err.Error()
	}
	return r
}

type openParams struct {
	Path string `json:"path"`
}

func (s *Server) handleOpen(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p openParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, invalidParams("path is required")
	}
	s.Open(ctx, p.Path)
	return s.stateResult(), nil
}

func (s *Server) handleState(context.Context, json.RawMessage) (interface{}, error) {
	return s.stateResult(), nil
}

// InputResult reports whether raw input changed the viewport.
type InputResult struct {
	Handled bool `json:"handled"`
	*StateResult
}

func (s *Server) handleInput(_ context.Context, params json.RawMessage) (interface{}, error) {
	var in viewport.Input
	if err := decodeParams(params, &in); err != nil {
		return nil, err
	}
	if in.Kind == "" {
		return nil, invalidParams("kind is required")
	}
	handled := s.viewer.Input(in)
	return &InputResult{Handled: handled, StateResult: s.stateResult()}, nil
}

type eventParams struct {
	Event string  `json:"event"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func (p eventParams) toEvent() (viewport.Event, error) {
	switch strings.ToLower(strings.TrimSpace(p.Event)) {
	case "scale":
		return viewport.Scale(p.Value), nil
	case "move":
		return viewport.Move(viewport.Vector{X: p.X, Y: p.Y}), nil
	}
	return viewport.ParseEvent(p.Event)
}

func (s *Server) handleEvent(_ context.Context, params json.RawMessage) (interface{}, error) {
	var p eventParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	e, err := p.toEvent()
	if err != nil {
		return nil, &paramsError{err: err}
	}
	s.viewer.Handle(e)
	return s.stateResult(), nil
}

type frameParams struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleRender(_ context.Context, params json.RawMessage) (interface{}, error) {
	var p frameParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return imaging.Encode(s.viewer.Frame(p.Width, p.Height))
}

func (s *Server) handleExport(_ context.Context, params json.RawMessage) (interface{}, error) {
	var p frameParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return s.viewer.Export(p.Width, p.Height)
}

type sampleParams struct {
	frameParams
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleSample(_ context.Context, params json.RawMessage) (interface{}, error) {
	var p sampleParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return s.viewer.Sample(p.X, p.Y, p.Width, p.Height)
}

// OpsResult lists the registered operations and the configured pipeline.
type OpsResult struct {
	Operations []op.Info `json:"operations"`
	Pipeline   []string  `json:"pipeline"`
	Fast       bool      `json:"fast"`
}

func (s *Server) handleOpsList(context.Context, json.RawMessage) (interface{}, error) {
	pipeline := s.cfg.Pipeline
	if pipeline == nil {
		pipeline = []string{}
	}
	return &OpsResult{
		Operations: s.registry.List(),
		Pipeline:   pipeline,
		Fast:       s.cfg.PipelineFast,
	}, nil
}
