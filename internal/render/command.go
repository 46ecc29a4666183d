// Package render culls the guide layout to the viewport and emits draw commands.
//
// Commands are plain data in screen coordinates, emitted back to front. A
// backend (the terminal canvas, or anything else) interprets them.
package render

import (
	"strings"

	"github.com/javiermolinar/bangumi/internal/nav"
)

// Op is a drawing primitive.
type Op int

const (
	OpRect Op = iota
	OpBorder
	OpText
	OpLine
	OpCircle
	OpImage
)

func (o Op) String() string {
	switch o {
	case OpRect:
		return "rect"
	case OpBorder:
		return "border"
	case OpText:
		return "text"
	case OpLine:
		return "line"
	case OpCircle:
		return "circle"
	case OpImage:
		return "image"
	}
	return "unknown"
}

// Layer groups commands by pass.
type Layer int

const (
	LayerCells Layer = iota
	LayerNow
	LayerFocus
	LayerTimeAxis
	LayerHeader
	LayerCorner
)

// Role tells the backend how to color a command.
type Role string

const (
	RoleCellNormal  Role = "cell"
	RoleCellPast    Role = "cell.past"
	RoleCellEmpty   Role = "cell.empty"
	RoleGenreBar    Role = "genre"
	RoleTitle       Role = "title"
	RoleTitleDim    Role = "title.dim"
	RoleDescription Role = "description"
	RoleGridLine    Role = "grid"
	RoleNowLine     Role = "now"
	RoleFocusFill   Role = "focus"
	RoleFocusBorder Role = "focus.border"
	RoleFocusTitle  Role = "focus.title"
	RoleFocusDesc   Role = "focus.description"
	RoleHourMorning Role = "hour.morning"
	RoleHourDay     Role = "hour.day"
	RoleHourNight   Role = "hour.night"
	RoleHourLabel   Role = "hour.label"
	RoleMeridiem    Role = "hour.meridiem"
	RoleHeader      Role = "header"
	RoleChannelNum  Role = "header.number"
	RoleChannelName Role = "header.name"
	RoleLogo        Role = "header.logo"
	RoleCorner      Role = "corner"
	RoleDate        Role = "date"
	RoleSaturday    Role = "date.saturday"
	RoleSunday      Role = "date.sunday"
)

// Command is a single draw instruction.
type Command struct {
	Op    Op
	Layer Layer
	Role  Role
	Rect  nav.Rect // for lines, a zero W or H gives the direction

	// Text commands.
	Lines []string

	// Stroke width for lines and borders, radius for circles.
	Width float64

	Genre Genre  // for RoleGenreBar
	Ref   string // program id, channel id or logo URL
}

// Text returns the lines joined by newlines.
func (c Command) Text() string {
	return strings.Join(c.Lines, "\n")
}

// Clip is a clip rectangle applied by the backend to a layer.
type Clip struct {
	Layer Layer
	Rect  nav.Rect
}
