package tui

import (
	"strings"
	"testing"

	"github.com/javiermolinar/bangumi/internal/nav"
	"github.com/javiermolinar/bangumi/internal/render"
	"github.com/javiermolinar/bangumi/internal/tui/theme"
)

func testStyles(t *testing.T) *Styles {
	t.Helper()
	th, err := theme.Load("mocha")
	if err != nil {
		t.Fatalf("theme.Load() error = %v", err)
	}
	return NewStyles(th)
}

func newTestCanvas(t *testing.T, w, h int) (*Canvas, *Styles) {
	t.Helper()
	styles := testStyles(t)
	return NewCanvas(w, h, styles, NewStyleCache()), styles
}

func TestCanvasRectFillsRoundedCells(t *testing.T) {
	c, styles := newTestCanvas(t, 6, 3)
	c.Draw([]render.Command{
		{Op: render.OpRect, Role: render.RoleCellNormal, Rect: nav.Rect{X: 0.6, Y: 0.4, W: 2, H: 1.2}},
	}, nil)

	want := styles.Role(render.RoleCellNormal, "").bg
	tests := []struct {
		x, y   int
		filled bool
	}{
		{0, 0, false},
		{1, 0, true},
		{2, 0, true},
		{3, 0, false},
		{1, 1, true},
		{1, 2, false},
	}
	for _, tt := range tests {
		got := c.Background(tt.x, tt.y) == want
		if got != tt.filled {
			t.Errorf("cell (%d,%d) filled = %v, want %v", tt.x, tt.y, got, tt.filled)
		}
	}
}

func TestCanvasTextIsClipped(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 2)
	c.Draw([]render.Command{
		{Op: render.OpText, Layer: render.LayerCells, Role: render.RoleTitle,
			Rect: nav.Rect{X: 2, Y: 0}, Lines: []string{"Hello world", "second"}},
	}, []render.Clip{
		{Layer: render.LayerCells, Rect: nav.Rect{X: 0, Y: 0, W: 8, H: 1}},
	})
	if got := c.Row(0); got != "  Hello   " {
		t.Errorf("row 0 = %q, want %q", got, "  Hello   ")
	}
	if got := strings.TrimSpace(c.Row(1)); got != "" {
		t.Errorf("row 1 = %q, want clipped", got)
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c, _ := newTestCanvas(t, 8, 1)
	c.Draw([]render.Command{
		{Op: render.OpText, Role: render.RoleTitle, Lines: []string{"ニュース"}},
	}, nil)
	if got := c.Row(0); got != "ニュース" {
		t.Errorf("row = %q, want four wide runes", got)
	}

	// Overwriting the trailing half of a wide rune blanks its leading half.
	c.Draw([]render.Command{
		{Op: render.OpText, Role: render.RoleTitle, Rect: nav.Rect{X: 1}, Lines: []string{"a"}},
	}, nil)
	if got := c.Row(0); got != " aュース" {
		t.Errorf("row = %q, want %q", got, " aュース")
	}
}

func TestCanvasLinesSitBeforeCoordinate(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4)
	c.Draw([]render.Command{
		{Op: render.OpLine, Role: render.RoleNowLine, Rect: nav.Rect{X: 0, Y: 2, W: 4}},
		{Op: render.OpLine, Role: render.RoleNowLine, Rect: nav.Rect{X: 3, Y: 0, H: 1}},
	}, nil)
	if got := c.Row(1); got != "────" {
		t.Errorf("row 1 = %q, want the horizontal line", got)
	}
	if got := c.Rune(2, 0); got != '│' {
		t.Errorf("rune (2,0) = %q, want vertical line", got)
	}
}

func TestCanvasGridLinesKeepText(t *testing.T) {
	c, _ := newTestCanvas(t, 5, 2)
	c.Draw([]render.Command{
		{Op: render.OpText, Role: render.RoleTitle, Lines: []string{"ab"}},
		{Op: render.OpLine, Role: render.RoleGridLine, Rect: nav.Rect{X: 0, Y: 1, W: 5}},
	}, nil)
	if got := c.Row(0); got != "ab───" {
		t.Errorf("row 0 = %q, want %q", got, "ab───")
	}
}

func TestCanvasBorder(t *testing.T) {
	c, _ := newTestCanvas(t, 5, 3)
	c.Draw([]render.Command{
		{Op: render.OpText, Role: render.RoleTitle, Rect: nav.Rect{X: 1}, Lines: []string{"Hi"}},
		{Op: render.OpBorder, Role: render.RoleFocusBorder, Rect: nav.Rect{W: 5, H: 3}},
	}, nil)
	want := []string{"╭Hi─╮", "│   │", "╰───╯"}
	for y, w := range want {
		if got := c.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestCanvasBorderKeepsTextSpaces(t *testing.T) {
	c, _ := newTestCanvas(t, 12, 2)
	c.Draw([]render.Command{
		{Op: render.OpRect, Role: render.RoleFocusFill, Rect: nav.Rect{W: 12, H: 2}},
		{Op: render.OpText, Role: render.RoleFocusTitle, Rect: nav.Rect{X: 1}, Lines: []string{"Noon News"}},
		{Op: render.OpBorder, Role: render.RoleFocusBorder, Rect: nav.Rect{W: 12, H: 2}},
		{Op: render.OpLine, Role: render.RoleGridLine, Rect: nav.Rect{X: 0, Y: 1, W: 12}},
	}, nil)
	if got, want := c.Row(0), "╭Noon News─╮"; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}

	// A later fill clears the text mark.
	c.Draw([]render.Command{
		{Op: render.OpRect, Role: render.RoleCellNormal, Rect: nav.Rect{W: 12, H: 2}},
		{Op: render.OpBorder, Role: render.RoleFocusBorder, Rect: nav.Rect{W: 12, H: 2}},
	}, nil)
	if got, want := c.Row(0), "╭──────────╮"; got != want {
		t.Errorf("row 0 after refill = %q, want %q", got, want)
	}
}

func TestCanvasImageIgnored(t *testing.T) {
	c, _ := newTestCanvas(t, 3, 1)
	c.Draw([]render.Command{
		{Op: render.OpImage, Role: render.RoleLogo, Rect: nav.Rect{W: 3, H: 1}, Ref: "logo.png"},
	}, nil)
	if got := c.Row(0); got != "   " {
		t.Errorf("row = %q, want blank", got)
	}
}

func TestCanvasStringMergesRuns(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 2)
	cache := c.cache
	c.Draw([]render.Command{
		{Op: render.OpRect, Role: render.RoleCellNormal, Rect: nav.Rect{W: 2, H: 2}},
	}, nil)
	out := c.String()
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if cache.Len() != 2 {
		t.Errorf("cached styles = %d, want 2 (cell and background)", cache.Len())
	}
}
