package viewport

import (
	"fmt"
	"math"
)

const (
	// MinScale and MaxScale bound the result of ZoomIn and ZoomOut.
	MinScale = 0.1
	MaxScale = 20.0

	// ZoomStep is the factor applied by one ZoomIn or ZoomOut.
	ZoomStep = 1.1
)

// Vector is a 2D offset in viewport pixels.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quarter counts clockwise quarter turns, always in [0, 3].
type Quarter int

// Degrees returns the clockwise rotation angle.
func (q Quarter) Degrees() int { return int(q) * 90 }

func (q Quarter) add(n int) Quarter {
	return Quarter(((int(q)+n)%4 + 4) % 4)
}

// State is the view of one image: how much it is magnified, where it is
// dragged to, how it is turned and whether the metadata panel is shown.
type State struct {
	Scale           float64 `json:"scale"`
	Pan             Vector  `json:"pan"`
	Rotation        Quarter `json:"rotation"`
	DisplayMetadata bool    `json:"display_metadata"`
}

// Initial returns the state of a freshly opened viewer: 100%, no pan, no
// rotation, metadata hidden.
func Initial() State {
	return State{Scale: 1}
}

// Apply returns the state that results from handling e.
func (s State) Apply(e Event) State {
	switch e.Kind {
	case EventScale:
		s.Scale = e.Value
	case EventZoomIn:
		s.Scale = clampScale(s.Scale * ZoomStep)
	case EventZoomOut:
		s.Scale = clampScale(s.Scale / ZoomStep)
	case EventZoomOriginal:
		s.Scale = 1
	case EventZoomChange:
		switch {
		case s.Scale < 1:
			s.Scale = 1
		case s.Scale < 2:
			s.Scale = 2
		default:
			s.Scale = 0.5
		}
	case EventMove:
		s.Pan = e.Delta
	case EventReset:
		s.Scale = 1
		s.Pan = Vector{}
	case EventInfo:
		s.DisplayMetadata = !s.DisplayMetadata
	case EventRotateCW:
		s.Rotation = s.Rotation.add(1)
	case EventRotateCCW:
		s.Rotation = s.Rotation.add(-1)
	}
	return s
}

// Percent formats the scale for the toolbar, e.g. "110%".
func (s State) Percent() string {
	return fmt.Sprintf("%.0f%%", s.Scale*100)
}

// Drawn returns s with a positive Scale bounded to [MinScale, MaxScale], the
// range frames are rendered at. Zero, negative and NaN scales are kept and
// draw nothing.
func (s State) Drawn() State {
	if s.Scale > 0 {
		s.Scale = clampScale(s.Scale)
	}
	return s
}

func clampScale(v float64) float64 {
	return math.Min(math.Max(v, MinScale), MaxScale)
}
