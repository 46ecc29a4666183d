package render

// Metrics are the paddings and thresholds used when placing cell content.
type Metrics struct {
	CellInset      float64 // gap between a cell background and its box
	TextInsetX     float64 // left offset of text within a cell
	TextInsetY     float64 // top offset of the title within a cell
	TextMarginW    float64 // width reserved around text
	TitleMarginH   float64 // height reserved around the title
	DescMarginH    float64 // height reserved around the description
	MinTitleHeight float64 // cells at or below this height get no title
	MinDescSpace   float64 // room needed under the title for a description
	StickyBottom   float64 // space kept below shifted text
	LineGap        float64 // gap between title and description
	GenreBarWidth  float64

	FocusMarginW  float64
	FocusDescMarH float64
	FocusLineGap  float64
	FocusBorder   float64

	NowLineWidth float64
	NowDotRadius float64

	LogoWidth float64
}

// DefaultMetrics matches the pixel geometry.
func DefaultMetrics() Metrics {
	return Metrics{
		CellInset:      1,
		TextInsetX:     10,
		TextInsetY:     8,
		TextMarginW:    16,
		TitleMarginH:   12,
		DescMarginH:    16,
		MinTitleHeight: 20,
		MinDescSpace:   20,
		StickyBottom:   16,
		LineGap:        2,
		GenreBarWidth:  6,
		FocusMarginW:   20,
		FocusDescMarH:  25,
		FocusLineGap:   4,
		FocusBorder:    4,
		NowLineWidth:   3,
		NowDotRadius:   6,
		LogoWidth:      30,
	}
}

// TerminalMetrics matches the cell geometry.
func TerminalMetrics() Metrics {
	return Metrics{
		CellInset:      0,
		TextInsetX:     2,
		TextInsetY:     0,
		TextMarginW:    3,
		TitleMarginH:   0,
		DescMarginH:    0,
		MinTitleHeight: 0.5,
		MinDescSpace:   0.5,
		StickyBottom:   0,
		LineGap:        0,
		GenreBarWidth:  1,
		FocusMarginW:   3,
		FocusDescMarH:  0,
		FocusLineGap:   0,
		FocusBorder:    1,
		NowLineWidth:   1,
		NowDotRadius:   1,
		LogoWidth:      0,
	}
}
