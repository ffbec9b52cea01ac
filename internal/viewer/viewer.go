// Package viewer ties one image to its viewport state.
//
// A Viewer is owned by a single event loop. Decoding happens on a separate
// goroutine started by Open, whose result comes back on a channel and must be
// handed to Complete by the same loop that delivers input. Viewer methods are
// not safe for concurrent use.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"time"

	"github.com/ironsheep/phany/internal/config"
	"github.com/ironsheep/phany/internal/imaging"
	"github.com/ironsheep/phany/internal/logging"
	"github.com/ironsheep/phany/internal/op"
	"github.com/ironsheep/phany/internal/render"
	"github.com/ironsheep/phany/internal/viewport"
)

// AppName is used in window titles.
const AppName = "phany"

// ErrNoImage is returned by operations that need a decoded image while the
// viewer is still loading.
var ErrNoImage = errors.New("no image loaded")

// Decoded is the outcome of one decode started by Open.
type Decoded struct {
	Generation uint64
	Path       string
	Image      image.Image
	Info       *imaging.ImageInfo
	Err        error
	Elapsed    time.Duration
}

// Viewer is the session state for one displayed image.
type Viewer struct {
	cfg      *config.Config
	cache    *imaging.ImageCache
	pipeline []op.Entry

	state    viewport.State
	image    image.Image
	info     *imaging.ImageInfo
	filename string
	err      error

	generation uint64
	cancel     context.CancelFunc
}

// New creates a viewer with no image. pipeline runs over every decoded image
// before it is shown; it may be empty. A nil cfg means config.Default().
func New(cfg *config.Config, cache *imaging.ImageCache, pipeline []op.Entry) *Viewer {
	if cfg == nil {
		cfg = config.Default()
	}
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Viewer{
		cfg:      cfg,
		cache:    cache,
		pipeline: pipeline,
		state:    viewport.Initial(),
	}
}

// Open starts decoding path in the background and resets the viewport. Any
// decode still in flight is cancelled and its result will be ignored.
//
// The returned channel yields exactly one Decoded and is then closed. The
// caller passes it to Complete.
func (v *Viewer) Open(ctx context.Context, path string) <-chan Decoded {
	v.stop()
	v.generation++
	v.filename = filepath.Base(path)
	v.image, v.info, v.err = nil, nil, nil
	v.state = viewport.Initial()

	ctx, cancel := context.WithCancel(ctx)
	if v.cfg.DecodeTimeout > 0 {
		ctx, cancel = withTimeout(ctx, cancel, v.cfg.DecodeTimeout)
	}
	v.cancel = cancel

	logging.Logger().Info("opening image", "path", path, "generation", v.generation)

	out := make(chan Decoded, 1)
	go func(gen uint64, cache *imaging.ImageCache, pipeline []op.Entry, fast bool) {
		defer close(out)
		out <- decode(ctx, gen, path, cache, pipeline, fast)
	}(v.generation, v.cache, v.pipeline, v.cfg.PipelineFast)
	return out
}

func withTimeout(ctx context.Context, cancel context.CancelFunc, d time.Duration) (context.Context, context.CancelFunc) {
	tctx, tcancel := context.WithTimeout(ctx, d)
	return tctx, func() {
		tcancel()
		cancel()
	}
}

func decode(ctx context.Context, gen uint64, path string, cache *imaging.ImageCache, pipeline []op.Entry, fast bool) Decoded {
	start := time.Now()
	d := Decoded{Generation: gen, Path: path}

	info, err := imaging.LoadImageInfo(ctx, cache, path)
	if err != nil {
		d.Err = err
		d.Elapsed = time.Since(start)
		return d
	}
	img, err := cache.LoadContext(ctx, path)
	if err == nil {
		img, err = imaging.Prepare(img, pipeline, fast)
	}
	d.Image, d.Info, d.Err = img, info, err
	d.Elapsed = time.Since(start)
	return d
}

// Complete installs the result of a decode. Results from a superseded Open
// are dropped and Complete reports false.
//
// A failed decode is logged and kept in Err; the viewer stays in the loading
// state.
func (v *Viewer) Complete(d Decoded) bool {
	log := logging.Logger()
	if d.Generation != v.generation {
		log.Debug("dropping stale decode", "path", d.Path, "generation", d.Generation, "current", v.generation)
		return false
	}
	v.stop()

	if d.Err != nil {
		v.err = d.Err
		log.Error("failed to decode image", "path", d.Path, "error", d.Err)
		return true
	}
	v.image, v.info = d.Image, d.Info
	b := d.Image.Bounds()
	log.Info("image decoded", "path", d.Path, "width", b.Dx(), "height", b.Dy(), "elapsed", d.Elapsed)
	return true
}

// Close cancels any decode in flight. Results arriving afterwards are
// ignored.
func (v *Viewer) Close() {
	v.stop()
	v.generation++
}

func (v *Viewer) stop() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// Handle applies e to the viewport state. Events are accepted while loading.
func (v *Viewer) Handle(e viewport.Event) viewport.State {
	v.state = v.state.Apply(e)
	logging.Logger().Debug("viewport event", "event", e.String(), "scale", v.state.Scale, "rotation", v.state.Rotation.Degrees())
	return v.state
}

// Input translates raw input and applies it. It reports whether the input
// had a viewport meaning.
func (v *Viewer) Input(in viewport.Input) bool {
	e, ok := viewport.Translate(in)
	if !ok {
		return false
	}
	v.Handle(e)
	return true
}

// State returns the current viewport state.
func (v *Viewer) State() viewport.State { return v.state }

// Loading reports whether no decoded image is available yet.
func (v *Viewer) Loading() bool { return v.image == nil }

// Err returns the error of the last failed decode, if any.
func (v *Viewer) Err() error { return v.err }

// Filename returns the base name of the opened file, or "" with none.
func (v *Viewer) Filename() string { return v.filename }

// Info returns the file metadata, or nil until it has been read.
func (v *Viewer) Info() *imaging.ImageInfo { return v.info }

// Image returns the decoded image, or nil while loading.
func (v *Viewer) Image() image.Image { return v.image }

// Title is the window title: "<file> - phany", or just "phany" with no file.
func (v *Viewer) Title() string {
	if v.filename == "" {
		return AppName
	}
	return v.filename + " - " + AppName
}

// Frame renders the current view at w x h. Non-positive sizes fall back to the
// configured frame size.
func (v *Viewer) Frame(w, h int) *image.NRGBA {
	w, h = v.size(w, h)
	return render.Frame(v.image, v.state, render.Options{
		Width:    w,
		Height:   h,
		Filename: v.filename,
		Info:     v.info,
	})
}

func (v *Viewer) size(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return v.cfg.FrameWidth, v.cfg.FrameHeight
	}
	return w, h
}

// imageView returns the size of the area the image is drawn in for a w x h
// frame, i.e. without the metadata panel.
func (v *Viewer) imageView(w, h int) (int, int, int) {
	if !v.state.DisplayMetadata {
		return 0, w, h
	}
	left := min(render.PanelWidth, w)
	return left, w - left, h
}

// Export returns the part of the image visible in a w x h frame as PNG, in
// the image's own orientation.
func (v *Viewer) Export(w, h int) (*imaging.ExportResult, error) {
	if v.image == nil {
		return nil, ErrNoImage
	}
	w, h = v.size(w, h)
	_, vw, vh := v.imageView(w, h)
	return imaging.ExportRegion(v.image, render.Visible(v.image.Bounds(), v.state, vw, vh))
}

// Sample returns the colour under frame coordinate (x, y) of a w x h frame.
func (v *Viewer) Sample(x, y float64, w, h int) (*imaging.ColorResult, error) {
	if v.image == nil {
		return nil, ErrNoImage
	}
	w, h = v.size(w, h)
	left, vw, vh := v.imageView(w, h)

	st := v.state.Drawn()
	if !(st.Scale > 0) {
		return nil, fmt.Errorf("nothing is drawn at scale %v", st.Scale)
	}
	b := v.image.Bounds()
	inv, ok := viewport.Placement(st, b.Dx(), b.Dy(), vw, vh).Invert()
	if !ok {
		return nil, errors.New("viewport transform is not invertible")
	}
	ix, iy := inv.Apply(x-float64(left), y)
	return imaging.SampleColor(v.image, b.Min.X+int(math.Floor(ix)), b.Min.Y+int(math.Floor(iy)))
}
