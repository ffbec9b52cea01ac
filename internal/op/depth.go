package op

import (
	"math"

	"github.com/ironsheep/phany/internal/pixel"
)

// Quantize8 converts normalized float pixels in [0, 1] to 8-bit pixels with the
// same channel count. Tags are carried over unchanged.
//
// The precise variant rounds to nearest; the fast variant truncates, so the two
// differ by at most one code value.
type Quantize8[F pixel.FloatPrimitive, P pixel.Shape[F], Q pixel.Shape[uint8]] struct{}

var _ Transform[float32, pixel.Quad[float32], uint8, pixel.Quad[uint8]] = Quantize8[float32, pixel.Quad[float32], pixel.Quad[uint8]]{}

func (Quantize8[F, P, Q]) Info() Info {
	return Info{
		Name:        "quantize8",
		Description: "Quantize normalized float channels to 8 bits",
		Inputs:      []Format{{Space: pixel.SpaceLinear}},
		Outputs:     []Format{{Space: pixel.SpaceLinear}},
	}
}

func (q Quantize8[F, P, Q]) Pipe(in *pixel.Image[F, P]) (*pixel.Image[uint8, Q], error) {
	name := q.Info().Name
	if in.Len() == 0 {
		return nil, opError(name, ErrEmptyImage)
	}
	n := pixel.Channels[F, P]()
	if n != pixel.Channels[uint8, Q]() {
		return nil, opError(name, ErrUnsupportedChannels)
	}

	out := pixel.New[uint8, Q](in.Len(), in.Space(), in.Encoding())
	src, dst := in.Pix(), out.Pix()
	for i := range src {
		for c := 0; c < n; c++ {
			dst[i][c] = uint8(math.Round(clamp01(float64(src[i][c])) * 255))
		}
	}
	return out, nil
}

func (Quantize8[F, P, Q]) PipeFast(in *pixel.Image[F, P]) *pixel.Image[uint8, Q] {
	n := pixel.Channels[F, P]()
	out := pixel.New[uint8, Q](in.Len(), in.Space(), in.Encoding())
	src, dst := in.Pix(), out.Pix()
	for i := range src {
		for c := 0; c < n; c++ {
			dst[i][c] = uint8(clamp01(float64(src[i][c])) * 255)
		}
	}
	return out
}

// Dequantize8 converts 8-bit pixels to normalized floats in [0, 1] with the
// same channel count. Both variants are exact; the fast one reads a table.
type Dequantize8[P pixel.Shape[uint8], F pixel.FloatPrimitive, Q pixel.Shape[F]] struct{}

var _ Transform[uint8, pixel.Quad[uint8], float32, pixel.Quad[float32]] = Dequantize8[pixel.Quad[uint8], float32, pixel.Quad[float32]]{}

var unit8 = func() (t [256]float64) {
	for i := range t {
		t[i] = float64(i) / 255
	}
	return t
}()

func (Dequantize8[P, F, Q]) Info() Info {
	return Info{
		Name:        "dequantize8",
		Description: "Expand 8-bit channels to normalized floats",
		Inputs:      []Format{{Space: pixel.SpaceLinear}},
		Outputs:     []Format{{Space: pixel.SpaceLinear}},
	}
}

func (d Dequantize8[P, F, Q]) Pipe(in *pixel.Image[uint8, P]) (*pixel.Image[F, Q], error) {
	name := d.Info().Name
	if in.Len() == 0 {
		return nil, opError(name, ErrEmptyImage)
	}
	n := pixel.Channels[uint8, P]()
	if n != pixel.Channels[F, Q]() {
		return nil, opError(name, ErrUnsupportedChannels)
	}

	out := pixel.New[F, Q](in.Len(), in.Space(), in.Encoding())
	src, dst := in.Pix(), out.Pix()
	for i := range src {
		for c := 0; c < n; c++ {
			dst[i][c] = F(float64(src[i][c]) / 255)
		}
	}
	return out, nil
}

func (Dequantize8[P, F, Q]) PipeFast(in *pixel.Image[uint8, P]) *pixel.Image[F, Q] {
	n := pixel.Channels[uint8, P]()
	out := pixel.New[F, Q](in.Len(), in.Space(), in.Encoding())
	src, dst := in.Pix(), out.Pix()
	for i := range src {
		for c := 0; c < n; c++ {
			dst[i][c] = F(unit8[src[i][c]])
		}
	}
	return out
}
