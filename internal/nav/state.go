// Package nav implements focus movement and scroll targeting over a guide layout.
package nav

import (
	"fmt"

	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
)

// Direction is a directional input.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Bottom returns Y + H.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Right returns X + W.
func (r Rect) Right() float64 { return r.X + r.W }

// Size is a viewport size in layout units, including the time bar and header.
type Size struct {
	W, H float64
}

// State is the navigation state. Scroll offsets are non-positive: content is
// translated by (ScrollTarget.X, ScrollTarget.Y). Interpolated current values
// are owned by the render loop, which eases toward these targets.
type State struct {
	Column int
	Minute int

	ScrollTarget Point
	FocusTarget  Rect
	Viewport     Size

	// Focused is the cell under (Column, Minute), valid when HasFocus is set.
	Focused  grid.Cell
	HasFocus bool

	// Generation of the layout the state was last resolved against.
	Generation uint64
}

// CurrentProgram returns the focused program unless it is synthetic.
func (s State) CurrentProgram() (epg.Program, bool) {
	if !s.HasFocus || s.Focused.Empty() {
		return epg.Program{}, false
	}
	return s.Focused.Program, true
}

// EventKind classifies controller output.
type EventKind int

const (
	// EventNone means the input had no effect.
	EventNone EventKind = iota
	// EventFocusChanged means the focus and scroll targets moved.
	EventFocusChanged
	// EventBoundary means a move was declined at a grid edge.
	EventBoundary
	// EventProgramSelected carries the activated program.
	EventProgramSelected
	// EventJumped acknowledges a jump to an instant.
	EventJumped
	// EventRestored acknowledges a restore to channel and time.
	EventRestored
	// EventReset means focus was reset to now after a data refresh.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventFocusChanged:
		return "focus"
	case EventBoundary:
		return "boundary"
	case EventProgramSelected:
		return "selected"
	case EventJumped:
		return "jumped"
	case EventRestored:
		return "restored"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is emitted by every controller transition.
type Event struct {
	Kind      EventKind
	Direction Direction // for EventBoundary and EventFocusChanged moves
	Column    int
	Minute    int
	Program   epg.Program // for EventProgramSelected
}
