// Package viewport implements the pan/zoom state machine of the viewer.
//
// State holds the current scale, pan offset, quarter-turn rotation and the
// metadata-overlay flag. It changes only through State.Apply, which is a pure
// function of the previous state and one Event and never fails. Apply is
// independent of any window system; Translate turns raw keyboard and pointer
// input into events so that an event loop needs only a thin adapter.
//
// # Scale Rules
//
// ZoomIn and ZoomOut multiply or divide by ZoomStep and clamp the result to
// [MinScale, MaxScale]. Scale and Move events set absolute values and are
// applied verbatim, without clamping; a scroll or drag source is expected to
// report already sensible values. ZoomChange cycles 100% -> 200% -> 50% for
// double-click style zooming.
//
// # Placement
//
// Placement maps image coordinates to viewport coordinates: the (rotated)
// image is scaled, centred in the viewport and shifted by the pan offset.
// Its inverse maps a pointer position back onto the image.
package viewport
