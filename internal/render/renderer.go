package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/bangumi/internal/dateutil"
	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
	"github.com/javiermolinar/bangumi/internal/nav"
)

// Frame is everything needed to draw one frame. Scroll and Focus are the
// current animated values; State carries the targets and the focused cell.
type Frame struct {
	Layout   *grid.Layout
	State    nav.State
	Scroll   nav.Point
	Focus    nav.Rect
	Viewport nav.Size
	Now      time.Time
}

// Renderer turns frames into draw commands. It is not safe for concurrent use.
type Renderer struct {
	metrics Metrics
	cache   *TextCache
}

// NewRenderer creates a renderer measuring text with m.
func NewRenderer(metrics Metrics, m Measurer) *Renderer {
	return &Renderer{metrics: metrics, cache: NewTextCache(m)}
}

// Cache returns the renderer's text cache.
func (r *Renderer) Cache() *TextCache {
	return r.cache
}

// Clips returns the clip rectangle of each layer for a viewport.
func (r *Renderer) Clips(l *grid.Layout, vp nav.Size) []Clip {
	g := l.Geometry
	content := nav.Rect{X: g.TimeBarWidth, Y: g.HeaderHeight, W: vp.W - g.TimeBarWidth, H: vp.H - g.HeaderHeight}
	return []Clip{
		{Layer: LayerCells, Rect: content},
		{Layer: LayerNow, Rect: content},
		{Layer: LayerFocus, Rect: nav.Rect{Y: g.HeaderHeight, W: vp.W, H: vp.H - g.HeaderHeight}},
		{Layer: LayerTimeAxis, Rect: nav.Rect{Y: g.HeaderHeight, W: g.TimeBarWidth, H: vp.H - g.HeaderHeight}},
		{Layer: LayerHeader, Rect: nav.Rect{X: g.TimeBarWidth, W: vp.W - g.TimeBarWidth, H: g.HeaderHeight}},
		{Layer: LayerCorner, Rect: nav.Rect{W: vp.W, H: vp.H}},
	}
}

// Render emits the commands for f, back to front.
func (r *Renderer) Render(f Frame) []Command {
	l := f.Layout
	if l == nil {
		return nil
	}
	r.cache.Sync(l.Generation)

	cmds := make([]Command, 0, 256)
	cmds = r.drawCells(cmds, f)
	cmds = r.drawNowLine(cmds, f)
	cmds = r.drawFocus(cmds, f)
	cmds = r.drawTimeAxis(cmds, f)
	cmds = r.drawHeader(cmds, f)
	cmds = r.drawCorner(cmds, f)
	return cmds
}

// VisibleColumns returns the visible column range for a frame.
func VisibleColumns(f Frame) (first, last int, ok bool) {
	g := f.Layout.Geometry
	return VisibleRange(-f.Scroll.X, f.Viewport.W-g.TimeBarWidth, g.ChannelWidth, f.Layout.ChannelCount())
}

func (r *Renderer) drawCells(cmds []Command, f Frame) []Command {
	l := f.Layout
	g := l.Geometry
	m := r.metrics

	first, last, ok := VisibleColumns(f)
	if !ok {
		return cmds
	}
	top := -f.Scroll.Y
	bottom := top + f.Viewport.H - g.HeaderHeight

	for c := first; c <= last; c++ {
		col := l.Columns[c]
		x := g.TimeBarWidth + f.Scroll.X + float64(c)*g.ChannelWidth

		from, to, ok := VisibleCells(col, g, top, bottom)
		if !ok {
			continue
		}
		for i := from; i <= to; i++ {
			cell := col.Cells[i]
			if cell.Bottom() <= top {
				continue
			}
			py := g.HeaderHeight + f.Scroll.Y + cell.Top
			ph := cell.Height
			p := cell.Program
			empty := cell.Empty()
			past := !f.Now.IsZero() && !p.End.After(f.Now)

			role := RoleCellNormal
			switch {
			case empty:
				role = RoleCellEmpty
			case past:
				role = RoleCellPast
			}
			inner := nav.Rect{X: x + m.CellInset, Y: py + m.CellInset, W: g.ChannelWidth - 2*m.CellInset, H: max(ph-2*m.CellInset, 0)}
			cmds = append(cmds,
				Command{Op: OpRect, Layer: LayerCells, Role: role, Rect: inner, Ref: p.ID},
				Command{Op: OpLine, Layer: LayerCells, Role: RoleGridLine, Rect: nav.Rect{X: x, Y: py, W: g.ChannelWidth}, Width: 1},
			)
			if !empty {
				cmds = append(cmds, Command{
					Op:    OpRect,
					Layer: LayerCells,
					Role:  RoleGenreBar,
					Rect:  nav.Rect{X: inner.X, Y: inner.Y, W: m.GenreBarWidth, H: inner.H},
					Genre: GenreOf(p.MajorGenre()),
					Ref:   p.ID,
				})
			}

			if ph > m.MinTitleHeight {
				titleRole := RoleTitle
				if past || empty {
					titleRole = RoleTitleDim
				}
				cmds = r.cellText(cmds, textBlock{
					layer:     LayerCells,
					program:   p,
					empty:     empty,
					key:       p.ID,
					x:         x,
					y:         py,
					h:         ph,
					width:     g.ChannelWidth - m.TextMarginW,
					fitH:      ph,
					descMarH:  m.DescMarginH,
					gap:       m.LineGap,
					titleRole: titleRole,
					descRole:  RoleDescription,
					boundary:  g.HeaderHeight,
					descGate:  true,
				})
			}
		}
		cmds = append(cmds, Command{Op: OpLine, Layer: LayerCells, Role: RoleGridLine,
			Rect: nav.Rect{X: x, Y: g.HeaderHeight, H: f.Viewport.H - g.HeaderHeight}, Width: 1})
	}
	return cmds
}

type textBlock struct {
	layer     Layer
	program   epg.Program
	empty     bool
	key       string
	x, y, h   float64
	width     float64
	fitH      float64 // height text is measured against
	descMarH  float64
	gap       float64
	titleRole Role
	descRole  Role
	boundary  float64 // header bottom; text above it is hidden
	descGate  bool    // require MinDescSpace below the title
}

// cellText places the title and optional description of a cell. When the
// cell's top is scrolled under the header, the block is shifted down so it
// stays readable, but never past the cell's own bottom.
func (r *Renderer) cellText(cmds []Command, t textBlock) []Command {
	m := r.metrics
	p := t.program

	title := r.cache.Get(t.key, p.Title, t.width, max(t.fitH-m.TitleMarginH, 0))

	var desc Box
	hasDesc := false
	room := t.fitH - title.H - m.TitleMarginH
	if !t.empty && strings.TrimSpace(p.Description) != "" && (!t.descGate || room > m.MinDescSpace) {
		desc = r.cache.Get(t.key+"d", p.Description, t.width, max(t.fitH-title.H-t.descMarH, 0))
		hasDesc = len(desc.Lines) > 0
	}

	block := title.H
	if hasDesc {
		block += desc.H + t.gap
	}
	shift := StickyShift(t.boundary, t.y, t.h, m.StickyBottom, block)

	titleY := t.y + m.TextInsetY + shift
	if len(title.Lines) > 0 && titleY+title.H > t.boundary {
		cmds = append(cmds, Command{
			Op:    OpText,
			Layer: t.layer,
			Role:  t.titleRole,
			Rect:  nav.Rect{X: t.x + m.TextInsetX, Y: titleY, W: title.W, H: title.H},
			Lines: title.Lines,
			Ref:   p.ID,
		})
	}
	if hasDesc {
		descY := titleY + title.H + t.gap
		if descY+desc.H > t.boundary {
			cmds = append(cmds, Command{
				Op:    OpText,
				Layer: t.layer,
				Role:  t.descRole,
				Rect:  nav.Rect{X: t.x + m.TextInsetX, Y: descY, W: desc.W, H: desc.H},
				Lines: desc.Lines,
				Ref:   p.ID,
			})
		}
	}
	return cmds
}

// StickyShift returns how far to push a text block of height block down a
// cell at (y, h) so it clears boundary while keeping bottomPad free at the
// cell's bottom.
func StickyShift(boundary, y, h, bottomPad, block float64) float64 {
	return min(max(0, boundary-y), max(0, h-bottomPad-block))
}

func (r *Renderer) drawNowLine(cmds []Command, f Frame) []Command {
	l := f.Layout
	g := l.Geometry
	if f.Now.IsZero() || f.Now.Before(l.Window.Base) || !f.Now.Before(l.Window.Limit) {
		return cmds
	}
	offset := f.Now.Sub(l.Window.Base).Minutes() * g.PixelsPerMinute
	y := g.HeaderHeight + f.Scroll.Y + offset
	if y < g.HeaderHeight || y >= f.Viewport.H {
		return cmds
	}
	return append(cmds,
		Command{Op: OpLine, Layer: LayerNow, Role: RoleNowLine,
			Rect: nav.Rect{X: g.TimeBarWidth, Y: y, W: f.Viewport.W - g.TimeBarWidth}, Width: r.metrics.NowLineWidth},
		Command{Op: OpCircle, Layer: LayerNow, Role: RoleNowLine,
			Rect: nav.Rect{X: g.TimeBarWidth, Y: y}, Width: r.metrics.NowDotRadius},
	)
}

func (r *Renderer) drawFocus(cmds []Command, f Frame) []Command {
	l := f.Layout
	g := l.Geometry
	m := r.metrics
	if l.ChannelCount() == 0 {
		return cmds
	}

	fx := g.TimeBarWidth + f.Scroll.X + f.Focus.X
	fy := g.HeaderHeight + f.Scroll.Y + f.Focus.Y
	fh := f.Focus.H
	border := Command{
		Op:    OpBorder,
		Layer: LayerFocus,
		Role:  RoleFocusBorder,
		Rect:  nav.Rect{X: fx - m.CellInset, Y: fy - m.CellInset, W: g.ChannelWidth + 2*m.CellInset, H: fh + 2*m.CellInset},
		Width: m.FocusBorder,
	}
	if !f.State.HasFocus {
		return append(cmds, border)
	}

	cell := f.State.Focused
	p := cell.Program
	inner := nav.Rect{X: fx + m.CellInset, Y: fy + m.CellInset, W: g.ChannelWidth - 2*m.CellInset, H: max(fh-2*m.CellInset, 0)}
	cmds = append(cmds, Command{Op: OpRect, Layer: LayerFocus, Role: RoleFocusFill, Rect: inner, Ref: p.ID})
	if !cell.Empty() {
		cmds = append(cmds, Command{
			Op:    OpRect,
			Layer: LayerFocus,
			Role:  RoleGenreBar,
			Rect:  nav.Rect{X: inner.X, Y: inner.Y, W: m.GenreBarWidth, H: inner.H},
			Genre: GenreOf(p.MajorGenre()),
			Ref:   p.ID,
		})
	}

	// Text is fitted to the target height so cached boxes stay valid while animating.
	cmds = r.cellText(cmds, textBlock{
		layer:     LayerFocus,
		program:   p,
		empty:     cell.Empty(),
		key:       p.ID + "f",
		x:         fx,
		y:         fy,
		h:         fh,
		width:     g.ChannelWidth - m.FocusMarginW,
		fitH:      f.State.FocusTarget.H,
		descMarH:  m.FocusDescMarH,
		gap:       m.FocusLineGap,
		titleRole: RoleFocusTitle,
		descRole:  RoleFocusDesc,
		boundary:  g.HeaderHeight,
	})
	return append(cmds, border)
}

func (r *Renderer) drawTimeAxis(cmds []Command, f Frame) []Command {
	l := f.Layout
	g := l.Geometry
	hourH := g.HourHeight()
	if hourH <= 0 {
		return cmds
	}
	totalHours := l.WindowMinutes() / 60
	first := max(int(-f.Scroll.Y/hourH), 0)
	last := min(int((-f.Scroll.Y+f.Viewport.H-g.HeaderHeight)/hourH), totalHours)

	for h := first; h <= last; h++ {
		y := g.HeaderHeight + f.Scroll.Y + float64(h)*hourH
		hour := l.Window.Base.Add(time.Duration(h) * time.Hour).Hour()

		cmds = append(cmds, Command{Op: OpRect, Layer: LayerTimeAxis, Role: HourBand(hour),
			Rect: nav.Rect{Y: y, W: g.TimeBarWidth, H: hourH}})

		meridiem := "AM"
		if hour >= 12 {
			meridiem = "PM"
		}
		mb := r.cache.Get("\x00meridiem:"+meridiem, meridiem, g.TimeBarWidth, hourH/2)
		cmds = append(cmds, Command{Op: OpText, Layer: LayerTimeAxis, Role: RoleMeridiem, Lines: mb.Lines,
			Rect: nav.Rect{X: (g.TimeBarWidth - mb.W) / 2, Y: y + hourH/4 - mb.H/2, W: mb.W, H: mb.H}})

		label := fmt.Sprintf("%d", hour)
		hb := r.cache.Get("\x00hour:"+label, label, g.TimeBarWidth, hourH/2)
		cmds = append(cmds, Command{Op: OpText, Layer: LayerTimeAxis, Role: RoleHourLabel, Lines: hb.Lines,
			Rect: nav.Rect{X: (g.TimeBarWidth - hb.W) / 2, Y: y + hourH/2 + (hourH/2-hb.H)/2, W: hb.W, H: hb.H}})

		cmds = append(cmds, Command{Op: OpLine, Layer: LayerTimeAxis, Role: RoleGridLine,
			Rect: nav.Rect{Y: y, W: g.TimeBarWidth}, Width: 1})
	}
	return cmds
}

// HourBand returns the time-axis background role for an hour of day.
func HourBand(hour int) Role {
	switch {
	case hour >= 4 && hour <= 10:
		return RoleHourMorning
	case hour >= 11 && hour <= 17:
		return RoleHourDay
	default:
		return RoleHourNight
	}
}

func (r *Renderer) drawHeader(cmds []Command, f Frame) []Command {
	l := f.Layout
	g := l.Geometry
	m := r.metrics

	cmds = append(cmds, Command{Op: OpRect, Layer: LayerHeader, Role: RoleHeader,
		Rect: nav.Rect{X: g.TimeBarWidth, W: f.Viewport.W - g.TimeBarWidth, H: g.HeaderHeight}})

	first, last, ok := VisibleColumns(f)
	if !ok {
		return cmds
	}
	for c := first; c <= last; c++ {
		ch := l.Columns[c].Channel
		x := g.TimeBarWidth + f.Scroll.X + float64(c)*g.ChannelWidth

		number := ch.Number
		if number == "" {
			number = "---"
		}
		nb := r.cache.Get("\x00num:"+ch.ID, number, g.ChannelWidth-m.LogoWidth, g.HeaderHeight)
		gap := 0.0
		if m.LogoWidth > 0 {
			gap = m.TextInsetX / 2
		}
		startX := x + (g.ChannelWidth-(m.LogoWidth+gap+nb.W))/2
		rowH := max(nb.H, 1)
		if m.LogoWidth > 0 {
			cmds = append(cmds, Command{Op: OpImage, Layer: LayerHeader, Role: RoleLogo,
				Rect: nav.Rect{X: startX, Y: m.TextInsetY, W: m.LogoWidth, H: rowH}, Ref: ch.LogoURL})
		}
		cmds = append(cmds, Command{Op: OpText, Layer: LayerHeader, Role: RoleChannelNum, Lines: nb.Lines,
			Rect: nav.Rect{X: startX + m.LogoWidth + gap, Y: m.TextInsetY, W: nb.W, H: nb.H}, Ref: ch.ID})

		nameY := m.TextInsetY + rowH + m.LineGap
		name := r.cache.Get("\x00name:"+ch.ID, ch.Name, g.ChannelWidth-m.TextMarginW, max(g.HeaderHeight-nameY, 0))
		if len(name.Lines) > 0 {
			cmds = append(cmds, Command{Op: OpText, Layer: LayerHeader, Role: RoleChannelName, Lines: name.Lines,
				Rect: nav.Rect{X: x + (g.ChannelWidth-name.W)/2, Y: nameY, W: name.W, H: name.H}, Ref: ch.ID})
		}
		cmds = append(cmds, Command{Op: OpLine, Layer: LayerHeader, Role: RoleGridLine,
			Rect: nav.Rect{X: x, H: g.HeaderHeight}, Width: 1})
	}
	return cmds
}

func (r *Renderer) drawCorner(cmds []Command, f Frame) []Command {
	l := f.Layout
	g := l.Geometry

	cmds = append(cmds, Command{Op: OpRect, Layer: LayerCorner, Role: RoleCorner,
		Rect: nav.Rect{W: g.TimeBarWidth, H: g.HeaderHeight}})

	shown := DateAt(l, f.Scroll.Y)
	date := dateutil.ShortDate(shown)
	day := dateutil.WeekdayLabel(shown)
	dayRole := RoleDate
	switch shown.Weekday() {
	case time.Saturday:
		dayRole = RoleSaturday
	case time.Sunday:
		dayRole = RoleSunday
	}

	db := r.cache.Get("\x00date:"+date, date, g.TimeBarWidth, g.HeaderHeight/2)
	wb := r.cache.Get("\x00day:"+day, day, g.TimeBarWidth, g.HeaderHeight/2)
	top := (g.HeaderHeight - db.H - wb.H) / 2
	cmds = append(cmds,
		Command{Op: OpText, Layer: LayerCorner, Role: RoleDate, Lines: db.Lines,
			Rect: nav.Rect{X: (g.TimeBarWidth - db.W) / 2, Y: top, W: db.W, H: db.H}},
		Command{Op: OpText, Layer: LayerCorner, Role: dayRole, Lines: wb.Lines,
			Rect: nav.Rect{X: (g.TimeBarWidth - wb.W) / 2, Y: top + db.H, W: wb.W, H: wb.H}},
		Command{Op: OpLine, Layer: LayerCorner, Role: RoleGridLine,
			Rect: nav.Rect{X: g.TimeBarWidth, H: f.Viewport.H}, Width: r.metrics.FocusBorder},
		Command{Op: OpLine, Layer: LayerCorner, Role: RoleGridLine,
			Rect: nav.Rect{Y: g.HeaderHeight, W: f.Viewport.W}, Width: r.metrics.FocusBorder},
	)
	return cmds
}

// DateAt returns the instant shown at the top of the viewport for scrollY.
func DateAt(l *grid.Layout, scrollY float64) time.Time {
	minute := max(l.Geometry.YToMinute(-scrollY), 0)
	return l.TimeAt(minute)
}
