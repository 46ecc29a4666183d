package render

import (
	"sort"

	"github.com/javiermolinar/bangumi/internal/grid"
)

// VisibleRange returns the inclusive index range of fixed-size items that
// intersect [offset, offset+size). ok is false when nothing is visible.
func VisibleRange(offset, size, cellSize float64, count int) (first, last int, ok bool) {
	if count <= 0 || cellSize <= 0 || size <= 0 {
		return 0, -1, false
	}
	first = int(offset / cellSize)
	last = int((offset + size) / cellSize)
	if offset+size == float64(last)*cellSize {
		// The range end is exclusive.
		last--
	}
	first = max(first, 0)
	last = min(last, count-1)
	if first > last {
		return 0, -1, false
	}
	return first, last, true
}

// VisibleCells returns the index range of cells in col intersecting [top, bottom).
// Cells are sorted by Top; the scan starts at the cell covering top and stops
// at the first cell below bottom.
func VisibleCells(col grid.Column, g grid.Geometry, top, bottom float64) (first, last int, ok bool) {
	cells := col.Cells
	if len(cells) == 0 || bottom <= top {
		return 0, -1, false
	}
	start := col.CellAt(g.YToMinute(max(top, 0)))
	if start < 0 {
		start = sort.Search(len(cells), func(i int) bool { return cells[i].Top >= top })
		if start > 0 && cells[start-1].Bottom() > top {
			start--
		}
	}

	first, last = -1, -1
	for i := start; i < len(cells); i++ {
		c := cells[i]
		if c.Bottom() <= top {
			continue
		}
		if c.Top >= bottom {
			break
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return 0, -1, false
	}
	return first, last, true
}
