package op

import (
	"math"
	"testing"

	"github.com/ironsheep/phany/internal/pixel"
)

// rampQuad creates n RGBA pixels whose colour channels sweep [0, 1] and whose
// alpha is fixed at 0.5.
func rampQuad(n int, space pixel.ColorSpace, enc pixel.Encoding) *Canonical {
	img := pixel.New[float32, pixel.Quad[float32]](n, space, enc)
	for i := 0; i < n; i++ {
		v := float32(i) / float32(n-1)
		img.Set(i, pixel.Quad[float32]{v, 1 - v, v * v, 0.5})
	}
	return img
}

// assertClose fails if any channel of got and want differs by more than tol.
func assertClose[T pixel.FloatPrimitive, P pixel.Shape[T]](t *testing.T, got, want *pixel.Image[T, P], tol float64) {
	t.Helper()
	if got.Len() != want.Len() {
		t.Fatalf("length: got %d, want %d", got.Len(), want.Len())
	}
	n := pixel.Channels[T, P]()
	for i := 0; i < got.Len(); i++ {
		g, w := got.At(i), want.At(i)
		for c := 0; c < n; c++ {
			if d := math.Abs(float64(g[c]) - float64(w[c])); d > tol {
				t.Fatalf("pixel %d channel %d: got %v, want %v (diff %g > %g)", i, c, g[c], w[c], d, tol)
			}
		}
	}
}
