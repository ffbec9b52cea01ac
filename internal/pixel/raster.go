package pixel

import "fmt"

// Raster gives an Image a width and height so that its flat pixel sequence can
// be read as rows. Pixels are stored row-major from the top-left corner.
type Raster[T Primitive, P Shape[T]] struct {
	*Image[T, P]
	Width  int
	Height int
}

// NewRaster allocates a zeroed width x height raster.
func NewRaster[T Primitive, P Shape[T]](width, height int, space ColorSpace, enc Encoding) (*Raster[T, P], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	return &Raster[T, P]{
		Image:  New[T, P](width*height, space, enc),
		Width:  width,
		Height: height,
	}, nil
}

// WrapRaster attaches dimensions to an existing image. The image length must
// equal width*height.
func WrapRaster[T Primitive, P Shape[T]](img *Image[T, P], width, height int) (*Raster[T, P], error) {
	if width < 0 || height < 0 || width*height != img.Len() {
		return nil, fmt.Errorf("raster size %dx%d does not match %d pixels", width, height, img.Len())
	}
	return &Raster[T, P]{Image: img, Width: width, Height: height}, nil
}

// Index returns the offset of pixel (x, y) in the flat sequence.
func (r *Raster[T, P]) Index(x, y int) int {
	return y*r.Width + x
}

// PixelAt returns the pixel at (x, y).
func (r *Raster[T, P]) PixelAt(x, y int) P {
	return r.At(r.Index(x, y))
}

// SetPixel replaces the pixel at (x, y).
func (r *Raster[T, P]) SetPixel(x, y int, p P) {
	r.Set(r.Index(x, y), p)
}
