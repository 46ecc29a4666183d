package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/bangumi/internal/nav"
	"github.com/javiermolinar/bangumi/internal/render"
)

// glyph is one terminal cell.
type glyph struct {
	r     rune
	style cellStyle
	cont  bool // trailing half of a wide rune
	ink   bool // written by text, spaces included
}

// Canvas rasterizes draw commands onto a grid of terminal cells. One layout
// unit is one cell. Lines sit on the cell just before their coordinate, so a
// separator at a cell's top edge lands on the row above it.
type Canvas struct {
	w, h   int
	cells  []glyph
	styles *Styles
	cache  *StyleCache
}

// NewCanvas creates a w by h canvas filled with the base background.
func NewCanvas(w, h int, styles *Styles, cache *StyleCache) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{w: w, h: h, cells: make([]glyph, w*h), styles: styles, cache: cache}
	blank := glyph{r: ' ', style: cellStyle{bg: styles.Background()}}
	for i := range c.cells {
		c.cells[i] = blank
	}
	return c
}

// cellRect is a half-open integer rectangle.
type cellRect struct {
	x0, y0, x1, y1 int
}

func (r cellRect) intersect(o cellRect) cellRect {
	return cellRect{max(r.x0, o.x0), max(r.y0, o.y0), min(r.x1, o.x1), min(r.y1, o.y1)}
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

func toCells(r nav.Rect) cellRect {
	return cellRect{
		x0: round(r.X), y0: round(r.Y),
		x1: round(r.X + r.W), y1: round(r.Y + r.H),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// lineIndex returns the cell a line at coordinate v is drawn on.
func lineIndex(v float64) int {
	return int(math.Ceil(v-1e-9)) - 1
}

// Draw rasterizes cmds in order, each clipped to its layer's clip rectangle.
func (c *Canvas) Draw(cmds []render.Command, clips []render.Clip) {
	bounds := cellRect{0, 0, c.w, c.h}
	layerClip := make(map[render.Layer]cellRect, len(clips))
	for _, cl := range clips {
		layerClip[cl.Layer] = toCells(cl.Rect).intersect(bounds)
	}
	for _, cmd := range cmds {
		clip, ok := layerClip[cmd.Layer]
		if !ok {
			clip = bounds
		}
		st := c.styles.Role(cmd.Role, cmd.Genre)
		switch cmd.Op {
		case render.OpRect:
			c.fill(toCells(cmd.Rect).intersect(clip), st)
		case render.OpText:
			c.text(cmd, clip, st)
		case render.OpLine:
			c.line(cmd, clip, st)
		case render.OpBorder:
			c.border(toCells(cmd.Rect), clip, st)
		case render.OpCircle:
			c.put(round(cmd.Rect.X), lineIndex(cmd.Rect.Y), '●', st, clip, false)
		case render.OpImage:
			// Terminals have no logos.
		}
	}
}

func (c *Canvas) at(x, y int) *glyph {
	return &c.cells[y*c.w+x]
}

// put writes r at (x, y) keeping any unset colors. With blankOnly, only
// empty cells not covered by text are written.
func (c *Canvas) put(x, y int, r rune, st cellStyle, clip cellRect, blankOnly bool) {
	if !clip.contains(x, y) {
		return
	}
	g := c.at(x, y)
	if blankOnly && (g.r != ' ' || g.cont || g.ink) {
		return
	}
	c.clearWide(x, y)
	g.r = r
	g.cont = false
	g.ink = false
	if st.fg != "" {
		g.style.fg = st.fg
	}
	if st.bg != "" {
		g.style.bg = st.bg
	}
	g.style.bold = st.bold
}

// clearWide blanks the other half of a wide rune about to be overwritten at (x, y).
func (c *Canvas) clearWide(x, y int) {
	g := c.at(x, y)
	if g.cont && x > 0 {
		c.at(x-1, y).r = ' '
	}
	if x+1 < c.w && c.at(x+1, y).cont {
		next := c.at(x+1, y)
		next.cont = false
		next.r = ' '
	}
}

// fill paints r with st's background. A foreground on a fill role becomes
// the default for text later drawn over it.
func (c *Canvas) fill(r cellRect, st cellStyle) {
	bg := st.bg
	if bg == "" {
		bg = c.styles.Background()
	}
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			c.clearWide(x, y)
			g := c.at(x, y)
			g.r = ' '
			g.cont = false
			g.ink = false
			g.style = cellStyle{fg: st.fg, bg: bg}
		}
	}
}

func (c *Canvas) text(cmd render.Command, clip cellRect, st cellStyle) {
	x0, y0 := round(cmd.Rect.X), round(cmd.Rect.Y)
	for i, line := range cmd.Lines {
		y := y0 + i
		if y < clip.y0 || y >= clip.y1 {
			continue
		}
		x := x0
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if x+w > clip.x1 {
				break
			}
			if x >= clip.x0 {
				c.put(x, y, r, st, clip, false)
				c.at(x, y).ink = true
				if w == 2 {
					c.clearWide(x+1, y)
					next := c.at(x+1, y)
					next.cont = true
					next.style.bg = c.at(x, y).style.bg
				}
			}
			x += w
		}
	}
}

func (c *Canvas) line(cmd render.Command, clip cellRect, st cellStyle) {
	blankOnly := cmd.Role == render.RoleGridLine
	r := cmd.Rect
	if r.H == 0 {
		y := lineIndex(r.Y)
		for x := round(r.X); x < round(r.X+r.W); x++ {
			c.put(x, y, '─', st, clip, blankOnly)
		}
		return
	}
	x := lineIndex(r.X)
	for y := round(r.Y); y < round(r.Y+r.H); y++ {
		c.put(x, y, '│', st, clip, blankOnly)
	}
}

// border draws a box on the outer cells of r. Vertical edges and corners
// always draw; horizontal edges only fill blanks so titles stay readable.
func (c *Canvas) border(r cellRect, clip cellRect, st cellStyle) {
	if r.x1-r.x0 < 2 || r.y1-r.y0 < 1 {
		return
	}
	left, right := r.x0, r.x1-1
	top, bottom := r.y0, r.y1-1
	for y := top; y <= bottom; y++ {
		c.put(left, y, '│', st, clip, false)
		c.put(right, y, '│', st, clip, false)
	}
	for x := left + 1; x < right; x++ {
		c.put(x, top, '─', st, clip, true)
		if bottom > top {
			c.put(x, bottom, '─', st, clip, true)
		}
	}
	if bottom > top {
		c.put(left, top, '╭', st, clip, false)
		c.put(right, top, '╮', st, clip, false)
		c.put(left, bottom, '╰', st, clip, false)
		c.put(right, bottom, '╯', st, clip, false)
	}
}

// Rune returns the rune at (x, y), or 0 outside the canvas.
func (c *Canvas) Rune(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.at(x, y).r
}

// Background returns the background color at (x, y).
func (c *Canvas) Background(x, y int) lipgloss.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return ""
	}
	return c.at(x, y).style.bg
}

// Row returns the runes of row y without styling.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b strings.Builder
	for x := range c.w {
		g := c.at(x, y)
		if g.cont {
			continue
		}
		b.WriteRune(g.r)
	}
	return b.String()
}

// String renders the canvas with ANSI styling, merging runs of equal style.
func (c *Canvas) String() string {
	var out strings.Builder
	var run strings.Builder
	for y := range c.h {
		if y > 0 {
			out.WriteByte('\n')
		}
		var cur cellStyle
		for x := range c.w {
			g := c.at(x, y)
			if g.cont {
				continue
			}
			if run.Len() > 0 && g.style != cur {
				out.WriteString(c.cache.Get(cur).Render(run.String()))
				run.Reset()
			}
			cur = g.style
			run.WriteRune(g.r)
		}
		if run.Len() > 0 {
			out.WriteString(c.cache.Get(cur).Render(run.String()))
			run.Reset()
		}
	}
	return out.String()
}
