package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/phany/internal/op"
	"github.com/ironsheep/phany/internal/pixel"
)

// Raster is the working representation decoded images are converted to before
// transformation operations run: normalized float RGBA, row-major.
type Raster = pixel.Raster[float32, pixel.Quad[float32]]

// DisplayEncoding is the transfer function assumed for decoded 8-bit images.
var DisplayEncoding = pixel.Gamma(2.2)

// ToRaster converts img into a float raster tagged RGB with a 2.2 gamma
// encoding. Alpha is kept straight (not premultiplied).
func ToRaster(img image.Image) (*Raster, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	px := make([]pixel.Quad[uint8], w*h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(px[y*w+x][:], row[x*4:x*4+4])
		}
	}
	src := pixel.FromPixels[uint8, pixel.Quad[uint8]](px, pixel.SpaceRGB, DisplayEncoding)

	floats, err := op.Dequantize8[pixel.Quad[uint8], float32, pixel.Quad[float32]]{}.Pipe(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return pixel.WrapRaster(floats, w, h)
}

// FromRaster quantizes r back to an 8-bit image. Tags are ignored; callers
// wanting a displayable result should leave r gamma encoded.
func FromRaster(r *Raster) (*image.NRGBA, error) {
	q, err := op.Quantize8[float32, pixel.Quad[float32], pixel.Quad[uint8]]{}.Pipe(r.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to convert raster: %w", err)
	}

	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, p := range q.Pix() {
		copy(out.Pix[i*4:i*4+4], p[:])
	}
	return out, nil
}

// ApplyPipeline runs entries over img in order. The precise variant of each
// entry is used unless fast is set. The first failing entry stops the
// pipeline and its error is returned; img may then hold partial results.
func ApplyPipeline(img *op.Canonical, entries []op.Entry, fast bool) error {
	for _, e := range entries {
		if fast {
			e.ApplyFast(img)
			continue
		}
		if err := e.Apply(img); err != nil {
			return err
		}
	}
	return nil
}

// Prepare runs entries over img and returns the displayable result. With no
// entries img is returned unchanged.
func Prepare(img image.Image, entries []op.Entry, fast bool) (image.Image, error) {
	if len(entries) == 0 {
		return img, nil
	}
	r, err := ToRaster(img)
	if err != nil {
		return nil, err
	}
	if err := ApplyPipeline(r.Image, entries, fast); err != nil {
		return nil, err
	}
	return FromRaster(r)
}
