package grid

import (
	"sort"
	"time"

	"github.com/javiermolinar/bangumi/internal/epg"
)

// Cell is a program placed on the time axis of its column.
type Cell struct {
	Program        epg.Program
	StartMinute    int // offset from the window base, never negative
	DurationMinute int
	Top            float64
	Height         float64
}

// Empty reports whether the cell is a synthetic gap.
func (c Cell) Empty() bool {
	return c.Program.Synthetic
}

// EndMinute returns the minute offset at which the cell ends.
func (c Cell) EndMinute() int {
	return c.StartMinute + c.DurationMinute
}

// Bottom returns Top + Height.
func (c Cell) Bottom() float64 {
	return c.Top + c.Height
}

// ContainsMinute reports whether minute falls within the cell.
func (c Cell) ContainsMinute(minute int) bool {
	return minute >= c.StartMinute && minute < c.EndMinute()
}

// Column is one channel's cells ordered by StartMinute.
type Column struct {
	Channel  epg.Channel
	Cells    []Cell
	overlaps bool
}

// CellAt returns the index of the cell covering minute, or -1.
func (c Column) CellAt(minute int) int {
	// First cell starting after minute; its predecessor is the candidate.
	i := sort.Search(len(c.Cells), func(i int) bool {
		return c.Cells[i].StartMinute > minute
	}) - 1
	if i >= 0 && c.Cells[i].ContainsMinute(minute) {
		if !c.overlaps {
			return i
		}
	} else if !c.overlaps {
		return -1
	}
	// Overlapping upstream data: the earliest covering cell wins.
	for j := range c.Cells {
		if c.Cells[j].StartMinute > minute {
			break
		}
		if c.Cells[j].ContainsMinute(minute) {
			return j
		}
	}
	return -1
}

// Layout is an immutable snapshot of the guide. It is never mutated after Build.
type Layout struct {
	Window     epg.Window
	Geometry   Geometry
	Columns    []Column
	Generation uint64
}

// Build lays out gap-filled schedules against the window. Cells are placed at
// their offset from the window base; a cell starting before the base is
// truncated at the top edge with its end preserved. Cells entirely outside the
// window are dropped.
func Build(schedules []epg.ChannelSchedule, w epg.Window, g Geometry) *Layout {
	l := &Layout{
		Window:   w,
		Geometry: g,
		Columns:  make([]Column, len(schedules)),
	}
	for i, s := range schedules {
		l.Columns[i] = BuildColumn(s, w, g)
	}
	return l
}

// BuildColumn lays out a single channel.
func BuildColumn(s epg.ChannelSchedule, w epg.Window, g Geometry) Column {
	col := Column{Channel: s.Channel, Cells: make([]Cell, 0, len(s.Programs))}
	total := w.Minutes()
	minDur := int(epg.MinProgramDuration / time.Minute)

	prevEnd := 0
	for _, p := range s.Programs {
		start, dur := epg.SafeOffsets(p, w.Base)
		end := start + dur
		if end <= 0 || start >= total {
			continue
		}
		if start < 0 {
			dur = end
			start = 0
		}
		if dur < minDur {
			dur = minDur
		}
		if start < prevEnd {
			col.overlaps = true
		}
		if start+dur > prevEnd {
			prevEnd = start + dur
		}

		col.Cells = append(col.Cells, Cell{
			Program:        p,
			StartMinute:    start,
			DurationMinute: dur,
			Top:            g.MinuteToY(start),
			Height:         max(g.MinuteToY(dur), 1),
		})
	}
	return col
}

// Empty returns a layout with no columns.
func Empty(w epg.Window, g Geometry) *Layout {
	return &Layout{Window: w, Geometry: g}
}

// ChannelCount returns the number of columns.
func (l *Layout) ChannelCount() int {
	if l == nil {
		return 0
	}
	return len(l.Columns)
}

// WindowMinutes returns the length of the window in minutes.
func (l *Layout) WindowMinutes() int {
	if l == nil {
		return 0
	}
	return l.Window.Minutes()
}

// ContentWidth returns the width of all columns.
func (l *Layout) ContentWidth() float64 {
	return float64(l.ChannelCount()) * l.Geometry.ChannelWidth
}

// ContentHeight returns the height of the whole window.
func (l *Layout) ContentHeight() float64 {
	return l.Geometry.MinuteToY(l.WindowMinutes())
}

// Cell returns the cell at (col, idx).
func (l *Layout) Cell(col, idx int) (Cell, bool) {
	if col < 0 || col >= l.ChannelCount() {
		return Cell{}, false
	}
	cells := l.Columns[col].Cells
	if idx < 0 || idx >= len(cells) {
		return Cell{}, false
	}
	return cells[idx], true
}

// CellAt returns the cell of column col covering minute.
func (l *Layout) CellAt(col, minute int) (Cell, bool) {
	if col < 0 || col >= l.ChannelCount() {
		return Cell{}, false
	}
	return l.Cell(col, l.Columns[col].CellAt(minute))
}

// ColumnIndex returns the column showing channelID, or -1.
func (l *Layout) ColumnIndex(channelID string) int {
	for i := range l.ChannelCount() {
		if l.Columns[i].Channel.ID == channelID {
			return i
		}
	}
	return -1
}

// FindProgram returns the column and cell index of the program with id.
func (l *Layout) FindProgram(id string) (col, idx int, ok bool) {
	for c := range l.ChannelCount() {
		for i, cell := range l.Columns[c].Cells {
			if cell.Program.ID == id {
				return c, i, true
			}
		}
	}
	return 0, 0, false
}

// MinuteOf returns the minute offset of t from the window base.
func (l *Layout) MinuteOf(t time.Time) int {
	return epg.MinutesBetween(l.Window.Base, t)
}

// TimeAt returns the instant at minute offset m.
func (l *Layout) TimeAt(m int) time.Time {
	return l.Window.Base.Add(time.Duration(m) * time.Minute)
}
