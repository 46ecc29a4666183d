package nav

import (
	"time"

	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
)

// StepMinutes is the vertical step used when no cell is focused.
const StepMinutes = 30

// Controller translates navigation input into focus and scroll targets. It is
// owned by a single goroutine and never blocks. Every transition resolves
// against the snapshot current in the store at the time it runs.
type Controller struct {
	store       *grid.Store
	now         func() time.Time
	state       State
	focusAt     time.Time
	initialized bool
}

// NewController creates a controller reading layouts from store. A nil now uses time.Now.
func NewController(store *grid.Store, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{store: store, now: now}
}

// State returns a copy of the navigation state.
func (c *Controller) State() State {
	return c.state
}

// Layout returns the snapshot transitions resolve against.
func (c *Controller) Layout() *grid.Layout {
	if c.store == nil {
		return nil
	}
	return c.store.Load()
}

// Resize records a new viewport size and re-targets scroll for the current focus.
func (c *Controller) Resize(w, h float64) Event {
	c.state.Viewport = Size{W: w, H: h}
	l := c.Layout()
	if !c.initialized || l == nil {
		return Event{Kind: EventNone}
	}
	c.updatePositions(l, c.state.Column, c.state.Minute)
	return c.event(EventFocusChanged)
}

// Refresh re-resolves focus after a new layout was published. With reset, or on
// the first refresh, focus returns to column 0 at the current time and scroll is
// placed at the current hour. Otherwise the focused instant is preserved.
func (c *Controller) Refresh(reset bool) Event {
	l := c.Layout()
	if l == nil {
		return Event{Kind: EventNone}
	}
	if reset || !c.initialized {
		c.initialized = true
		c.resetToNow(l)
		return c.event(EventReset)
	}

	// The window base may have moved; keep the focused instant.
	c.updatePositions(l, c.state.Column, l.MinuteOf(c.focusAt))
	return c.event(EventFocusChanged)
}

// BackToNow focuses column 0 at the current time.
func (c *Controller) BackToNow() Event {
	l := c.Layout()
	if l == nil {
		return Event{Kind: EventNone}
	}
	c.initialized = true
	c.resetToNow(l)
	return c.event(EventReset)
}

// Move applies a directional input. Moves past a grid edge leave the state
// untouched and return EventBoundary so the caller can hand focus elsewhere.
func (c *Controller) Move(d Direction) Event {
	l := c.Layout()
	if l == nil || l.ChannelCount() == 0 {
		return c.boundary(d)
	}

	switch d {
	case Left, Right:
		delta := 1
		if d == Left {
			delta = -1
		}
		col := c.state.Column + delta
		if col < 0 || col >= l.ChannelCount() {
			return c.boundary(d)
		}
		c.updatePositions(l, col, c.state.Minute)

	case Up:
		minute := c.state.Minute - StepMinutes
		if c.state.HasFocus {
			minute = c.state.Focused.StartMinute - 1
		}
		if minute < 0 {
			return c.boundary(d)
		}
		c.updatePositions(l, c.state.Column, minute)

	case Down:
		minute := c.state.Minute + StepMinutes
		if c.state.HasFocus {
			minute = c.state.Focused.EndMinute()
		}
		if minute >= l.WindowMinutes() {
			return c.boundary(d)
		}
		c.updatePositions(l, c.state.Column, minute)
	}

	ev := c.event(EventFocusChanged)
	ev.Direction = d
	return ev
}

// Activate selects the focused program. Synthetic cells produce EventNone.
func (c *Controller) Activate() Event {
	p, ok := c.state.CurrentProgram()
	if !ok {
		return Event{Kind: EventNone, Column: c.state.Column, Minute: c.state.Minute}
	}
	ev := c.event(EventProgramSelected)
	ev.Program = p
	return ev
}

// JumpTo focuses column 0 at instant t, clamped into the window. A new jump
// simply overwrites the targets of any previous one.
func (c *Controller) JumpTo(t time.Time) Event {
	l := c.Layout()
	if l == nil {
		return Event{Kind: EventNone}
	}
	c.initialized = true
	c.updatePositions(l, 0, l.Window.ClampMinute(l.MinuteOf(t)))
	return c.event(EventJumped)
}

// Restore focuses the column showing channelID at the instant in start. An
// unknown channel falls back to column 0; an unreadable start, or one before
// the window, falls back to now.
func (c *Controller) Restore(channelID, start string) Event {
	l := c.Layout()
	if l == nil {
		return Event{Kind: EventNone}
	}
	col := l.ColumnIndex(channelID)
	if col < 0 {
		col = 0
	}
	now := c.now()
	t := epg.ParseTimeOrFallback(start, now)
	if t.Before(l.Window.Base) {
		t = now
	}
	c.initialized = true
	c.updatePositions(l, col, l.MinuteOf(t))
	return c.event(EventRestored)
}

// NowMinute returns the minute offset of the current time, or -1 when now is
// outside the window.
func (c *Controller) NowMinute() int {
	l := c.Layout()
	if l == nil {
		return -1
	}
	now := c.now()
	if !l.Window.Contains(now) {
		return -1
	}
	return l.MinuteOf(now)
}

func (c *Controller) resetToNow(l *grid.Layout) {
	now := c.now()
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	hourMinute := l.Window.ClampMinute(l.MinuteOf(hour))

	c.state.ScrollTarget = Point{X: 0, Y: -l.Geometry.MinuteToY(hourMinute)}
	c.updatePositions(l, 0, l.MinuteOf(now))
}

// updatePositions focuses (col, minute) and moves the scroll target by the
// smallest amount that keeps the focus rectangle visible.
func (c *Controller) updatePositions(l *grid.Layout, col, minute int) {
	g := l.Geometry

	if n := l.ChannelCount(); col >= n {
		col = n - 1
	}
	if col < 0 {
		col = 0
	}
	minute = l.Window.ClampMinute(minute)
	if total := l.WindowMinutes(); total > 0 && minute >= total {
		minute = total - 1
	}

	cell, ok := l.CellAt(col, minute)
	c.state.Column = col
	c.state.Minute = minute
	c.state.Focused = cell
	c.state.HasFocus = ok
	c.state.Generation = l.Generation
	c.focusAt = l.TimeAt(minute)

	rect := Rect{X: float64(col) * g.ChannelWidth, W: g.ChannelWidth}
	if ok {
		rect.Y = cell.Top
		rect.H = cell.Height
		if !cell.Empty() && rect.H < g.MinExpandedHeight {
			rect.H = g.MinExpandedHeight
		}
	} else {
		rect.Y = g.MinuteToY(minute)
		rect.H = g.MinuteToY(StepMinutes)
	}
	c.state.FocusTarget = rect

	visibleW, visibleH := c.visibleSize(g)
	scroll := c.state.ScrollTarget

	if rect.X < -scroll.X {
		scroll.X = -rect.X
	} else if rect.Right() > -scroll.X+visibleW {
		scroll.X = -(rect.Right() - visibleW)
	}

	if rect.Bottom() > -scroll.Y+visibleH {
		scroll.Y = -(rect.Bottom() - visibleH + g.ScrollPadding)
	}
	if rect.Y < -scroll.Y {
		scroll.Y = -rect.Y
	}

	maxX := -max(l.ContentWidth()-visibleW, 0)
	maxY := -max(l.ContentHeight()+g.BottomPadding-visibleH, 0)
	scroll.X = clamp(scroll.X, maxX, 0)
	scroll.Y = clamp(scroll.Y, maxY, 0)
	c.state.ScrollTarget = scroll
}

// visibleSize returns the content area of the viewport, excluding the time bar
// and header. It never shrinks below one focused cell.
func (c *Controller) visibleSize(g grid.Geometry) (float64, float64) {
	w := max(c.state.Viewport.W-g.TimeBarWidth, g.ChannelWidth)
	h := max(c.state.Viewport.H-g.HeaderHeight, g.MinExpandedHeight)
	return w, h
}

// VisibleSize returns the content area of the current viewport.
func (c *Controller) VisibleSize() (w, h float64) {
	l := c.Layout()
	if l == nil {
		return 0, 0
	}
	return c.visibleSize(l.Geometry)
}

func (c *Controller) boundary(d Direction) Event {
	return Event{Kind: EventBoundary, Direction: d, Column: c.state.Column, Minute: c.state.Minute}
}

func (c *Controller) event(kind EventKind) Event {
	return Event{Kind: kind, Column: c.state.Column, Minute: c.state.Minute}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
