package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor is an 8-bit straight-alpha colour.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor is a colour in HSL space, rounded for display.
type HSLColor struct {
	H int `json:"h"` // 0-359 degrees
	S int `json:"s"` // 0-100 percent
	L int `json:"l"` // 0-100 percent
}

// ColorResult is the colour under a single pixel.
type ColorResult struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"` // "#rrggbb", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor returns the colour of img at (x, y) in image coordinates.
//
// Fully transparent pixels report black for hex and HSL, because the RGB
// components of a zero-alpha colour carry no information.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	src := img.At(x, y)
	c, ok := colorful.MakeColor(src)
	if !ok {
		c = colorful.Color{}
	}
	h, s, l := c.Hsl()
	r8, g8, b8 := c.RGB255()
	_, _, _, a := src.RGBA()

	return &ColorResult{
		X:    x,
		Y:    y,
		Hex:  c.Hex(),
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: uint8(a >> 8)},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}
