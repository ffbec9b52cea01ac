// Package pixel provides the typed pixel and image model used by the viewer's
// decode-time pipeline.
//
// The model is expressed entirely with generic constraints. A channel value is a
// Primitive (fixed-width integer or float), and a pixel is a Shape built from one
// Primitive: Mono (grey), Pair (luma+alpha), Triple or Quad. Because every shape
// is an array of a single element type, a pixel whose channels mix widths cannot
// be written down, and an Image whose declared Primitive disagrees with its Shape
// fails to type-check.
//
// # Colour Interpretation
//
// ColorSpace and Encoding are tags carried by an Image next to its pixels, not
// part of the pixel type: the same Triple[float32] layout may hold RGB, LAB or LCH
// data. Every Image holds exactly one ColorSpace and one Encoding at any time.
// This package defines the vocabulary only; conversions live in package op.
//
// # Dimensions
//
// Image is a flat, fixed-length sequence. Raster wraps an Image with a width and
// height for consumers that need to read it as a 2D grid.
//
// # Thread Safety
//
// Images are not safe for concurrent mutation. Callers that share an Image
// between goroutines must synchronize access themselves.
package pixel
