package pixel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorSpace tags how the channel values of an image are to be interpreted.
//
// The set is open: values outside the declared constants are legal and print
// as ColorSpace(n), so new spaces can be introduced without breaking callers.
type ColorSpace uint8

const (
	// SpaceLinear carries no meaning beyond the raw channel numbers.
	SpaceLinear ColorSpace = iota
	SpaceRGB
	SpaceHSL
	SpaceLCH
	SpaceLAB
	SpaceJzAzBz
)

var colorSpaceNames = [...]string{
	SpaceLinear: "linear",
	SpaceRGB:    "rgb",
	SpaceHSL:    "hsl",
	SpaceLCH:    "lch",
	SpaceLAB:    "lab",
	SpaceJzAzBz: "jzazbz",
}

func (c ColorSpace) String() string {
	if int(c) < len(colorSpaceNames) {
		return colorSpaceNames[c]
	}
	return "ColorSpace(" + strconv.Itoa(int(c)) + ")"
}

// ParseColorSpace returns the ColorSpace named s (case-insensitive).
func ParseColorSpace(s string) (ColorSpace, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorSpaceNames {
		if n == name {
			return ColorSpace(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color space: %q", s)
}

// Encoding describes the transfer function applied to stored channel values.
// The zero value is the linear encoding.
type Encoding struct {
	gamma    bool
	exponent float64
}

// Linear returns the identity transfer function.
func Linear() Encoding {
	return Encoding{}
}

// Gamma returns a power-law transfer function with the given exponent.
// Stored values v relate to linear intensity as v^exponent.
func Gamma(exponent float64) Encoding {
	return Encoding{gamma: true, exponent: exponent}
}

// IsGamma reports whether e is a power-law encoding.
func (e Encoding) IsGamma() bool { return e.gamma }

// Exponent returns the gamma exponent, or 1 for the linear encoding.
func (e Encoding) Exponent() float64 {
	if !e.gamma {
		return 1
	}
	return e.exponent
}

// Validate reports an error for gamma encodings whose exponent is not a finite
// positive number.
func (e Encoding) Validate() error {
	if !e.gamma {
		return nil
	}
	if math.IsNaN(e.exponent) || math.IsInf(e.exponent, 0) || e.exponent <= 0 {
		return fmt.Errorf("invalid gamma exponent %v", e.exponent)
	}
	return nil
}

func (e Encoding) String() string {
	if !e.gamma {
		return "linear"
	}
	return "gamma(" + strconv.FormatFloat(e.exponent, 'g', -1, 64) + ")"
}
