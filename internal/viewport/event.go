package viewport

import (
	"fmt"
	"strings"
)

// EventKind identifies a viewport transition.
type EventKind int

const (
	// EventNone leaves the state unchanged.
	EventNone EventKind = iota
	// EventScale sets the scale to the event's value, unclamped.
	EventScale
	// EventZoomIn multiplies the scale by ZoomStep, bounded by MaxScale.
	EventZoomIn
	// EventZoomOut divides the scale by ZoomStep, bounded by MinScale.
	EventZoomOut
	// EventZoomOriginal sets the scale to 1.
	EventZoomOriginal
	// EventZoomChange cycles the scale through 1, 2 and 0.5.
	EventZoomChange
	// EventMove sets the pan offset to the event's vector.
	EventMove
	// EventReset restores scale 1 and a zero pan.
	EventReset
	// EventInfo toggles the metadata panel.
	EventInfo
	// EventRotateCW turns the image a quarter clockwise.
	EventRotateCW
	// EventRotateCCW turns the image a quarter counter-clockwise.
	EventRotateCCW
)

var eventNames = map[EventKind]string{
	EventNone:         "none",
	EventScale:        "scale",
	EventZoomIn:       "zoom_in",
	EventZoomOut:      "zoom_out",
	EventZoomOriginal: "zoom_original",
	EventZoomChange:   "zoom_change",
	EventMove:         "move",
	EventReset:        "reset",
	EventInfo:         "info",
	EventRotateCW:     "rotate_cw",
	EventRotateCCW:    "rotate_ccw",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one input to the state machine. Value is used by Scale, Delta by
// Move; other kinds carry no payload.
type Event struct {
	Kind  EventKind
	Value float64
	Delta Vector
}

// Scale sets the scale to v.
func Scale(v float64) Event { return Event{Kind: EventScale, Value: v} }

// Move sets the pan offset to d.
func Move(d Vector) Event { return Event{Kind: EventMove, Delta: d} }

// Simple returns a payload-free event of kind k.
func Simple(k EventKind) Event { return Event{Kind: k} }

func (e Event) String() string {
	switch e.Kind {
	case EventScale:
		return fmt.Sprintf("scale(%g)", e.Value)
	case EventMove:
		return fmt.Sprintf("move(%g,%g)", e.Delta.X, e.Delta.Y)
	default:
		return e.Kind.String()
	}
}

// ParseEvent maps a payload-free event name such as "zoom_in" or "reset" to
// its event. Scale and Move need a payload and are not accepted.
func ParseEvent(name string) (Event, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, v := range eventNames {
		if v != n {
			continue
		}
		switch k {
		case EventNone, EventScale, EventMove:
			return Event{}, fmt.Errorf("event %q needs a payload", name)
		}
		return Simple(k), nil
	}
	return Event{}, fmt.Errorf("unknown event: %q", name)
}
