package viewport

// InputKind classifies raw input reported by an event source.
type InputKind string

// Input kinds accepted by Translate.
const (
	// InputKey is a key press; Key and Ctrl are set.
	InputKey InputKind = "key"
	// InputDrag is a pointer drag; Offset is set.
	InputDrag InputKind = "drag"
	// InputScroll is a wheel or pinch zoom; Scale is set.
	InputScroll InputKind = "scroll"
	// InputMiddleClick is a middle mouse button press.
	InputMiddleClick InputKind = "middle_click"
)

// Input is one raw keyboard or pointer event.
type Input struct {
	Kind InputKind `json:"kind"`

	// Key is the character produced by a key press.
	Key  string `json:"key,omitempty"`
	Ctrl bool   `json:"ctrl,omitempty"`

	// Offset is the accumulated drag offset.
	Offset Vector `json:"offset"`

	// Scale is the absolute scale computed by the scroll or pinch source.
	Scale float64 `json:"scale,omitempty"`
}

// Translate converts raw input to a viewport event. The second result is
// false for input that has no viewport meaning.
//
//	ctrl+0        ZoomOriginal
//	ctrl+=        ZoomIn
//	ctrl+-        ZoomOut
//	drag          Move(offset)
//	scroll/pinch  Scale(value)
//	middle click  ZoomChange
func Translate(in Input) (Event, bool) {
	switch in.Kind {
	case InputKey:
		if !in.Ctrl {
			return Event{}, false
		}
		switch in.Key {
		case "0":
			return Simple(EventZoomOriginal), true
		case "=":
			return Simple(EventZoomIn), true
		case "-":
			return Simple(EventZoomOut), true
		}
	case InputDrag:
		return Move(in.Offset), true
	case InputScroll:
		return Scale(in.Scale), true
	case InputMiddleClick:
		return Simple(EventZoomChange), true
	}
	return Event{}, false
}
