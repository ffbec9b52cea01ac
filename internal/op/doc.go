// Package op defines the contract for pixel-to-pixel image transformations and
// provides the built-in operations and their registry.
//
// Every operation exposes four variants through two interfaces:
//
//   - Transform: Pipe (precise, allocating) and PipeFast (approximate, allocating)
//   - InPlace: additionally PipeInPlace and PipeInPlaceFast, available only when
//     the input and output pixel types are the same
//
// Precise variants validate their input and return an error wrapping one of the
// package sentinels (ErrEmptyImage, ErrUnsupportedChannels, ErrEncoding,
// ErrColorSpace). Fast variants have no error path: they skip validation and may
// use lookup tables or polynomial approximations. Calling a fast variant on input
// that the precise variant would reject has unspecified results.
//
// Both variants of an operation share its Info (name, description, formats),
// which the registry exposes for discovery.
//
// # Thread Safety
//
// Operations are stateless values and may be used from several goroutines, but
// the in-place variants require exclusive access to the image they modify.
// The registry is safe for concurrent use.
package op
