package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/phany/internal/imaging"
	"github.com/ironsheep/phany/internal/viewport"
)

// writeQuadrants writes a PNG with red, green, blue and white quadrants.
func writeQuadrants(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			switch {
			case x < w/2 && y < h/2:
				c = color.NRGBA{255, 0, 0, 255}
			case y < h/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < w/2:
				c = color.NRGBA{0, 0, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "quadrants.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func call(t *testing.T, s *Server, method string, params interface{}) *Response {
	t.Helper()
	req := &Request{JSONRPC: "2.0", ID: 1, Method: method}
	if params != nil {
		req.Params = mustJSON(t, params)
	}
	resp := s.handleRequest(context.Background(), req)
	if resp == nil {
		t.Fatalf("%s: no response", method)
	}
	return resp
}

func mustResult[T any](t *testing.T, resp *Response) T {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	v, ok := resp.Result.(T)
	if !ok {
		t.Fatalf("result type %T", resp.Result)
	}
	return v
}

func wantError(t *testing.T, resp *Response, code int) {
	t.Helper()
	if resp.Error == nil {
		t.Fatalf("expected error %d, got result %+v", code, resp.Result)
	}
	if resp.Error.Code != code {
		t.Errorf("error code: got %d (%s), want %d", resp.Error.Code, resp.Error.Data, code)
	}
}

// loadedServer returns a server whose viewer shows a 20x20 quadrant image.
func loadedServer(t *testing.T) *Server {
	t.Helper()
	s := newServer()
	mustResult[*StateResult](t, call(t, s, "viewer/open", openParams{Path: writeQuadrants(t, 20, 20)}))
	s.complete(<-s.pending)
	s.pending = nil
	if s.viewer.Loading() {
		t.Fatalf("image not loaded: %v", s.viewer.Err())
	}
	return s
}

func TestHandleState(t *testing.T) {
	s := newServer()
	st := mustResult[*StateResult](t, call(t, s, "viewer/state", nil))
	if !st.Loading || st.Title != "phany" || st.Zoom != "100%" || st.Info != nil {
		t.Errorf("empty viewer state: %+v", st)
	}

	s = loadedServer(t)
	st = mustResult[*StateResult](t, call(t, s, "viewer/state", nil))
	if st.Loading || st.Title != "quadrants.png - phany" || st.Info == nil || st.Info.Width != 20 {
		t.Errorf("loaded viewer state: %+v", st)
	}
}

func TestHandleOpen_InvalidParams(t *testing.T) {
	s := newServer()
	wantError(t, call(t, s, "viewer/open", nil), codeInvalidParams)
	wantError(t, call(t, s, "viewer/open", openParams{}), codeInvalidParams)

	resp := s.handleRequest(context.Background(), &Request{ID: 1, Method: "viewer/open", Params: json.RawMessage(`{"path": 7}`)})
	wantError(t, resp, codeInvalidParams)
}

func TestHandleOpen_Failure(t *testing.T) {
	s := newServer()
	var buf bytes.Buffer
	s.out = json.NewEncoder(&buf)

	call(t, s, "viewer/open", openParams{Path: filepath.Join(t.TempDir(), "missing.png")})
	s.complete(<-s.pending)

	var n Notification
	if err := json.Unmarshal(buf.Bytes(), &n); err != nil {
		t.Fatalf("no notification: %v", err)
	}
	if n.Method != "viewer/failed" {
		t.Errorf("notification: got %s", n.Method)
	}
	st := mustResult[*StateResult](t, call(t, s, "viewer/state", nil))
	if !st.Loading || st.Error == "" {
		t.Errorf("after failed open: %+v", st)
	}
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name   string
		params eventParams
		check  func(viewport.State) bool
	}{
		{"zoom in", eventParams{Event: "zoom_in"}, func(s viewport.State) bool { return s.Scale > 1.09 && s.Scale < 1.11 }},
		{"scale", eventParams{Event: "scale", Value: 3}, func(s viewport.State) bool { return s.Scale == 3 }},
		{"move", eventParams{Event: "Move", X: 4, Y: -2}, func(s viewport.State) bool { return s.Pan == viewport.Vector{X: 4, Y: -2} }},
		{"info", eventParams{Event: "info"}, func(s viewport.State) bool { return s.DisplayMetadata }},
		{"rotate", eventParams{Event: "rotate_ccw"}, func(s viewport.State) bool { return s.Rotation == 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := mustResult[*StateResult](t, call(t, newServer(), "viewer/event", tt.params))
			if !tt.check(st.State) {
				t.Errorf("state: %+v", st.State)
			}
		})
	}

	for _, bad := range []string{"", "none", "explode"} {
		wantError(t, call(t, newServer(), "viewer/event", eventParams{Event: bad}), codeInvalidParams)
	}
}

func TestHandleInput(t *testing.T) {
	s := newServer()

	r := mustResult[*InputResult](t, call(t, s, "viewer/input", viewport.Input{Kind: viewport.InputKey, Key: "=", Ctrl: true}))
	if !r.Handled || r.State.Scale <= 1 {
		t.Errorf("ctrl+=: %+v", r)
	}
	r = mustResult[*InputResult](t, call(t, s, "viewer/input", viewport.Input{Kind: viewport.InputKey, Key: "q"}))
	if r.Handled {
		t.Error("plain key should not be handled")
	}
	r = mustResult[*InputResult](t, call(t, s, "viewer/input", viewport.Input{Kind: viewport.InputDrag, Offset: viewport.Vector{X: 10}}))
	if r.State.Pan.X != 10 {
		t.Errorf("drag: %+v", r.State)
	}

	wantError(t, call(t, s, "viewer/input", map[string]interface{}{}), codeInvalidParams)
}

func TestHandleRender(t *testing.T) {
	for _, s := range []*Server{newServer(), loadedServer(t)} {
		res := mustResult[*imaging.ExportResult](t, call(t, s, "viewer/render", frameParams{Width: 120, Height: 80}))
		if res.Width != 120 || res.Height != 80 || res.MimeType != "image/png" {
			t.Errorf("render: %dx%d %s", res.Width, res.Height, res.MimeType)
		}
	}

	res := mustResult[*imaging.ExportResult](t, call(t, newServer(), "viewer/render", nil))
	if res.Width != 1024 || res.Height != 768 {
		t.Errorf("default render size: %dx%d", res.Width, res.Height)
	}
}

func TestHandleSample(t *testing.T) {
	wantError(t, call(t, newServer(), "viewer/sample", sampleParams{X: 1, Y: 1}), codeExecution)

	s := loadedServer(t)
	p := sampleParams{frameParams: frameParams{Width: 200, Height: 100}, X: 91, Y: 41}
	c := mustResult[*imaging.ColorResult](t, call(t, s, "viewer/sample", p))
	if c.Hex != "#ff0000" || c.X != 1 || c.Y != 1 {
		t.Errorf("sample: %+v", c)
	}

	p.X, p.Y = 0, 0
	resp := call(t, s, "viewer/sample", p)
	wantError(t, resp, codeExecution)
	if !strings.Contains(resp.Error.Data.(string), "outside image bounds") {
		t.Errorf("error data: %v", resp.Error.Data)
	}
}

func TestHandleExport(t *testing.T) {
	wantError(t, call(t, newServer(), "viewer/export", nil), codeExecution)

	s := loadedServer(t)
	call(t, s, "viewer/event", eventParams{Event: "scale", Value: 10})
	res := mustResult[*imaging.ExportResult](t, call(t, s, "viewer/export", frameParams{Width: 200, Height: 100}))
	if res.Width != 20 || res.Height != 10 {
		t.Errorf("export: %dx%d, want 20x10", res.Width, res.Height)
	}
}

func TestHandleOpsList(t *testing.T) {
	s := newServer()
	s.cfg.Pipeline = []string{"srgb-linearize"}

	r := mustResult[*OpsResult](t, call(t, s, "ops/list", nil))
	if len(r.Operations) != 4 {
		t.Errorf("got %d operations", len(r.Operations))
	}
	if len(r.Pipeline) != 1 || r.Pipeline[0] != "srgb-linearize" {
		t.Errorf("pipeline: %v", r.Pipeline)
	}
}

func TestHandleRender_HugeScrollScale(t *testing.T) {
	s := loadedServer(t)

	r := mustResult[*InputResult](t, call(t, s, "viewer/input", viewport.Input{Kind: viewport.InputScroll, Scale: 20000}))
	if !r.Handled || r.State.Scale != 20000 {
		t.Fatalf("scroll: %+v", r.State)
	}
	res := mustResult[*imaging.ExportResult](t, call(t, s, "viewer/render", frameParams{Width: 200, Height: 150}))
	if res.Width != 200 || res.Height != 150 {
		t.Errorf("render: got %dx%d, want 200x150", res.Width, res.Height)
	}
}
