package pixel

import "fmt"

// Image is an owned, contiguous buffer of pixels of one fixed shape, tagged
// with the ColorSpace and Encoding its values are expressed in.
//
// The number of pixels is fixed when the Image is created.
type Image[T Primitive, P Shape[T]] struct {
	pix      []P
	space    ColorSpace
	encoding Encoding
}

// New allocates an Image of n zero-valued pixels.
func New[T Primitive, P Shape[T]](n int, space ColorSpace, enc Encoding) *Image[T, P] {
	if n < 0 {
		n = 0
	}
	return &Image[T, P]{
		pix:      make([]P, n),
		space:    space,
		encoding: enc,
	}
}

// FromPixels creates an Image that takes ownership of pix.
func FromPixels[T Primitive, P Shape[T]](pix []P, space ColorSpace, enc Encoding) *Image[T, P] {
	return &Image[T, P]{pix: pix, space: space, encoding: enc}
}

// Len returns the number of pixels.
func (img *Image[T, P]) Len() int { return len(img.pix) }

// Channels returns the number of channels per pixel.
func (img *Image[T, P]) Channels() int { return Channels[T, P]() }

// At returns the i-th pixel.
func (img *Image[T, P]) At(i int) P { return img.pix[i] }

// Set replaces the i-th pixel.
func (img *Image[T, P]) Set(i int, p P) { img.pix[i] = p }

// Pix returns the underlying pixel slice. Writes through it modify the image;
// its length must not be changed.
func (img *Image[T, P]) Pix() []P { return img.pix }

// Space returns the colour space tag.
func (img *Image[T, P]) Space() ColorSpace { return img.space }

// Encoding returns the transfer function tag.
func (img *Image[T, P]) Encoding() Encoding { return img.encoding }

// SetTags replaces both interpretation tags at once.
func (img *Image[T, P]) SetTags(space ColorSpace, enc Encoding) {
	img.space = space
	img.encoding = enc
}

// Clone returns a deep copy of the image.
func (img *Image[T, P]) Clone() *Image[T, P] {
	pix := make([]P, len(img.pix))
	copy(pix, img.pix)
	return &Image[T, P]{pix: pix, space: img.space, encoding: img.encoding}
}

func (img *Image[T, P]) String() string {
	return fmt.Sprintf("Image[%d px, %d ch, %s, %s]", len(img.pix), img.Channels(), img.space, img.encoding)
}
