package op

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/phany/internal/pixel"
)

// SRGBLinearize removes the sRGB transfer curve from an RGB image, producing
// linear RGB. The input must be tagged RGB with a gamma encoding; the exact
// exponent is ignored because the piecewise sRGB curve is applied instead.
//
// The precise variant uses the sRGB formula; the fast variant uses a
// polynomial approximation accurate to about 1e-2 over [0, 1].
type SRGBLinearize[T pixel.FloatPrimitive, P pixel.Shape[T]] struct{}

var _ InPlace[float32, pixel.Quad[float32]] = SRGBLinearize[float32, pixel.Quad[float32]]{}

func (SRGBLinearize[T, P]) Info() Info {
	return Info{
		Name:        "srgb-linearize",
		Description: "Convert sRGB-encoded RGB or RGBA to linear RGB",
		Inputs:      []Format{{Space: pixel.SpaceRGB, Channels: 3}, {Space: pixel.SpaceRGB, Channels: 4}},
		Outputs:     []Format{{Space: pixel.SpaceRGB, Channels: 3}, {Space: pixel.SpaceRGB, Channels: 4}},
	}
}

func (s SRGBLinearize[T, P]) validate(img *pixel.Image[T, P]) error {
	name := s.Info().Name
	if img.Len() == 0 {
		return opError(name, ErrEmptyImage)
	}
	if colorChannels[T, P]() != 3 {
		return opError(name, ErrUnsupportedChannels)
	}
	if img.Space() != pixel.SpaceRGB {
		return opError(name, ErrColorSpace)
	}
	if !img.Encoding().IsGamma() {
		return opError(name, ErrEncoding)
	}
	return nil
}

func (s SRGBLinearize[T, P]) PipeInPlace(img *pixel.Image[T, P]) error {
	if err := s.validate(img); err != nil {
		return err
	}
	pix := img.Pix()
	for i := range pix {
		r, g, b := rgbOf[T](pix[i]).LinearRgb()
		setRGB[T](&pix[i], r, g, b)
	}
	img.SetTags(pixel.SpaceRGB, pixel.Linear())
	return nil
}

func (SRGBLinearize[T, P]) PipeInPlaceFast(img *pixel.Image[T, P]) {
	pix := img.Pix()
	for i := range pix {
		r, g, b := rgbOf[T](pix[i]).FastLinearRgb()
		setRGB[T](&pix[i], r, g, b)
	}
	img.SetTags(pixel.SpaceRGB, pixel.Linear())
}

func (s SRGBLinearize[T, P]) Pipe(in *pixel.Image[T, P]) (*pixel.Image[T, P], error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	out := in.Clone()
	return out, s.PipeInPlace(out)
}

func (s SRGBLinearize[T, P]) PipeFast(in *pixel.Image[T, P]) *pixel.Image[T, P] {
	out := in.Clone()
	s.PipeInPlaceFast(out)
	return out
}

// SRGBDelinearize is the inverse of SRGBLinearize: it applies the sRGB curve to
// linear RGB and tags the result Gamma(2.2).
type SRGBDelinearize[T pixel.FloatPrimitive, P pixel.Shape[T]] struct{}

var _ InPlace[float32, pixel.Quad[float32]] = SRGBDelinearize[float32, pixel.Quad[float32]]{}

func (SRGBDelinearize[T, P]) Info() Info {
	return Info{
		Name:        "srgb-delinearize",
		Description: "Convert linear RGB or RGBA to sRGB encoding",
		Inputs:      []Format{{Space: pixel.SpaceRGB, Channels: 3}, {Space: pixel.SpaceRGB, Channels: 4}},
		Outputs:     []Format{{Space: pixel.SpaceRGB, Channels: 3}, {Space: pixel.SpaceRGB, Channels: 4}},
	}
}

func (s SRGBDelinearize[T, P]) validate(img *pixel.Image[T, P]) error {
	name := s.Info().Name
	if img.Len() == 0 {
		return opError(name, ErrEmptyImage)
	}
	if colorChannels[T, P]() != 3 {
		return opError(name, ErrUnsupportedChannels)
	}
	if img.Space() != pixel.SpaceRGB {
		return opError(name, ErrColorSpace)
	}
	if img.Encoding().IsGamma() {
		return opError(name, ErrEncoding)
	}
	return nil
}

func (s SRGBDelinearize[T, P]) PipeInPlace(img *pixel.Image[T, P]) error {
	if err := s.validate(img); err != nil {
		return err
	}
	pix := img.Pix()
	for i := range pix {
		v := rgbOf[T](pix[i])
		c := colorful.LinearRgb(v.R, v.G, v.B)
		setRGB[T](&pix[i], c.R, c.G, c.B)
	}
	img.SetTags(pixel.SpaceRGB, pixel.Gamma(2.2))
	return nil
}

func (SRGBDelinearize[T, P]) PipeInPlaceFast(img *pixel.Image[T, P]) {
	pix := img.Pix()
	for i := range pix {
		v := rgbOf[T](pix[i])
		c := colorful.FastLinearRgb(v.R, v.G, v.B)
		setRGB[T](&pix[i], c.R, c.G, c.B)
	}
	img.SetTags(pixel.SpaceRGB, pixel.Gamma(2.2))
}

func (s SRGBDelinearize[T, P]) Pipe(in *pixel.Image[T, P]) (*pixel.Image[T, P], error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	out := in.Clone()
	return out, s.PipeInPlace(out)
}

func (s SRGBDelinearize[T, P]) PipeFast(in *pixel.Image[T, P]) *pixel.Image[T, P] {
	out := in.Clone()
	s.PipeInPlaceFast(out)
	return out
}

// rgbOf reads the first three channels of p. Indices are variables because
// the shape's type set includes layouts with fewer channels.
func rgbOf[T pixel.FloatPrimitive, P pixel.Shape[T]](p P) colorful.Color {
	var v [3]float64
	for c := 0; c < len(v); c++ {
		v[c] = clamp01(float64(p[c]))
	}
	return colorful.Color{R: v[0], G: v[1], B: v[2]}
}

func setRGB[T pixel.FloatPrimitive, P pixel.Shape[T]](p *P, r, g, b float64) {
	v := [3]float64{r, g, b}
	for c := 0; c < len(v); c++ {
		(*p)[c] = T(clamp01(v[c]))
	}
}
