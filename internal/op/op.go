package op

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/phany/internal/pixel"
)

var (
	// ErrEmptyImage is returned when an operation receives an image with no pixels.
	ErrEmptyImage = errors.New("empty image")

	// ErrUnsupportedChannels is returned when the pixel shape has a channel
	// count the operation cannot handle.
	ErrUnsupportedChannels = errors.New("unsupported channel count")

	// ErrEncoding is returned when the image's transfer function does not match
	// what the operation expects.
	ErrEncoding = errors.New("unexpected encoding")

	// ErrColorSpace is returned when the image's colour space does not match
	// what the operation expects.
	ErrColorSpace = errors.New("unexpected color space")
)

// Format describes one image layout an operation accepts or produces.
// Channels of 0 means any channel count.
type Format struct {
	Space    pixel.ColorSpace
	Channels int
}

// MarshalText lets formats appear as "rgb/3" in JSON listings.
func (f Format) MarshalText() ([]byte, error) {
	if f.Channels == 0 {
		return []byte(f.Space.String() + "/*"), nil
	}
	return []byte(fmt.Sprintf("%s/%d", f.Space, f.Channels)), nil
}

// Info is the discovery metadata shared by all variants of an operation.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Inputs      []Format `json:"inputs"`
	Outputs     []Format `json:"outputs"`
}

// Transform maps images of pixel type P (channels T) to images of pixel type Q
// (channels U), allocating the result.
type Transform[T pixel.Primitive, P pixel.Shape[T], U pixel.Primitive, Q pixel.Shape[U]] interface {
	Info() Info

	// Pipe returns a new image holding the reference result.
	Pipe(in *pixel.Image[T, P]) (*pixel.Image[U, Q], error)

	// PipeFast returns a new image computed with relaxed precision.
	// The caller must have validated the input.
	PipeFast(in *pixel.Image[T, P]) *pixel.Image[U, Q]
}

// InPlace is a Transform whose output type equals its input type and which can
// therefore rewrite an image in place.
type InPlace[T pixel.Primitive, P pixel.Shape[T]] interface {
	Transform[T, P, T, P]

	// PipeInPlace rewrites img with the reference result.
	PipeInPlace(img *pixel.Image[T, P]) error

	// PipeInPlaceFast rewrites img with relaxed precision.
	// The caller must have validated the input.
	PipeInPlaceFast(img *pixel.Image[T, P])
}

func opError(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}

// colorChannels returns how many leading channels of P carry colour, leaving a
// trailing alpha channel out.
func colorChannels[T pixel.Primitive, P pixel.Shape[T]]() int {
	n := pixel.Channels[T, P]()
	if pixel.HasAlpha[T, P]() {
		n--
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
