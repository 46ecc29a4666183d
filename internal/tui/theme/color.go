package theme

import (
	"fmt"
	"math"
)

// rgb is an 8-bit sRGB triple parsed from a "#rrggbb" theme value.
type rgb struct{ r, g, b float64 }

// parseRGB accepts only the "#rrggbb" form used by theme files.
func parseRGB(hex string) (rgb, bool) {
	var r, g, b uint8
	if len(hex) != 7 {
		return rgb{}, false
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb{}, false
	}
	return rgb{float64(r), float64(g), float64(b)}, true
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.r), uint8(c.g), uint8(c.b))
}

// mix moves c toward o by t in [0, 1].
func (c rgb) mix(o rgb, t float64) rgb {
	t = min(max(t, 0), 1)
	return rgb{c.r + (o.r-c.r)*t, c.g + (o.g-c.g)*t, c.b + (o.b-c.b)*t}
}

// luminance is the WCAG relative luminance.
func (c rgb) luminance() float64 {
	lin := func(v float64) float64 {
		v /= 255
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.r) + 0.7152*lin(c.g) + 0.0722*lin(c.b)
}

// blendColors mixes hex a toward hex b. Unparseable input returns a.
func blendColors(a, b string, t float64) string {
	ca, okA := parseRGB(a)
	cb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	return ca.mix(cb, t).hex()
}

// darkenColor halves each channel with a floor of 40 so dark-theme bands
// stay distinguishable from the background.
func darkenColor(hex string) string {
	c, ok := parseRGB(hex)
	if !ok {
		return hex
	}
	const floor = 40
	return rgb{max(c.r/2, floor), max(c.g/2, floor), max(c.b/2, floor)}.hex()
}

func relativeLuminance(hex string) float64 {
	c, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return c.luminance()
}

func contrastRatio(a, b string) float64 {
	hi, lo := relativeLuminance(a), relativeLuminance(b)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// chooseTextColor returns whichever of the two text colors reads better on bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}
