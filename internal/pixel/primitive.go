package pixel

// UnsignedPrimitive is a constraint for unsigned integer channel types.
type UnsignedPrimitive interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// SignedPrimitive is a constraint for signed integer channel types.
type SignedPrimitive interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// IntPrimitive is a constraint for all integer channel types.
type IntPrimitive interface {
	UnsignedPrimitive | SignedPrimitive
}

// FloatPrimitive is a constraint for floating-point channel types.
// Operations that need fractional arithmetic (gamma curves, linearization)
// are restricted to it.
type FloatPrimitive interface {
	~float32 | ~float64
}

// Primitive is the closed set of numeric kinds a pixel channel may have.
type Primitive interface {
	IntPrimitive | FloatPrimitive
}

// Mono is a single-channel (grey) pixel.
type Mono[T Primitive] [1]T

// Pair is a two-channel pixel, typically luma and alpha.
type Pair[T Primitive] [2]T

// Triple is a three-channel pixel, e.g. RGB or LAB.
type Triple[T Primitive] [3]T

// Quad is a four-channel pixel, e.g. RGBA.
type Quad[T Primitive] [4]T

// Shape is satisfied by every pixel layout built from the primitive T.
// All channels of a Shape share T.
type Shape[T Primitive] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T
}

// Channels returns the number of channels in the shape P.
func Channels[T Primitive, P Shape[T]]() int {
	var p P
	return len(p)
}

// HasAlpha reports whether the shape P carries an alpha channel in its last
// position (Pair and Quad).
func HasAlpha[T Primitive, P Shape[T]]() bool {
	n := Channels[T, P]()
	return n == 2 || n == 4
}
