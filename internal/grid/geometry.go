// Package grid precomputes the channel-by-time layout of the program guide.
package grid

// Geometry holds the fixed dimensions of the guide. Units are abstract: the
// TV preset uses pixels, the terminal preset uses character cells.
type Geometry struct {
	PixelsPerMinute   float64
	ChannelWidth      float64
	TimeBarWidth      float64
	HeaderHeight      float64
	MinExpandedHeight float64
	BottomPadding     float64
	ScrollPadding     float64
}

// DefaultGeometry is the pixel geometry of a 1080p TV guide: 80px per hour.
func DefaultGeometry() Geometry {
	return Geometry{
		PixelsPerMinute:   80.0 / 60.0,
		ChannelWidth:      130,
		TimeBarWidth:      60,
		HeaderHeight:      45,
		MinExpandedHeight: 140,
		BottomPadding:     120,
		ScrollPadding:     32,
	}
}

// TerminalGeometry is a cell geometry: one row per five minutes.
func TerminalGeometry() Geometry {
	return Geometry{
		PixelsPerMinute:   0.2,
		ChannelWidth:      22,
		TimeBarWidth:      6,
		HeaderHeight:      2,
		MinExpandedHeight: 5,
		BottomPadding:     6,
		ScrollPadding:     1,
	}
}

// HourHeight returns the height of one hour on the time axis.
func (g Geometry) HourHeight() float64 {
	return 60 * g.PixelsPerMinute
}

// MinuteToY converts a minute offset to a vertical position.
func (g Geometry) MinuteToY(minute int) float64 {
	return float64(minute) * g.PixelsPerMinute
}

// YToMinute converts a vertical position to a whole minute offset.
func (g Geometry) YToMinute(y float64) int {
	if g.PixelsPerMinute <= 0 {
		return 0
	}
	return int(y / g.PixelsPerMinute)
}

// Valid reports whether the geometry can be laid out.
func (g Geometry) Valid() bool {
	return g.PixelsPerMinute > 0 && g.ChannelWidth > 0 && g.TimeBarWidth >= 0 && g.HeaderHeight >= 0
}
