package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Box is measured text.
type Box struct {
	W, H  float64
	Lines []string
}

// Measurer lays text out inside a maximum box. Implementations must return a
// box no larger than the constraint, truncating as needed.
type Measurer interface {
	Measure(text string, maxW, maxH float64) Box
}

// TextCache memoizes measured text by key. It is cleared whenever the layout
// generation changes, since cached boxes depend on cell constraints.
type TextCache struct {
	measurer   Measurer
	entries    map[string]Box
	generation uint64
	hits       int
	misses     int
}

// NewTextCache creates a cache in front of m.
func NewTextCache(m Measurer) *TextCache {
	return &TextCache{measurer: m, entries: make(map[string]Box)}
}

// Sync drops every entry if gen differs from the last synced generation.
func (c *TextCache) Sync(gen uint64) {
	if gen == c.generation {
		return
	}
	c.generation = gen
	c.Clear()
}

// Clear drops every entry.
func (c *TextCache) Clear() {
	clear(c.entries)
}

// Get returns the box for key, measuring text on a miss.
func (c *TextCache) Get(key, text string, maxW, maxH float64) Box {
	if b, ok := c.entries[key]; ok {
		c.hits++
		return b
	}
	c.misses++
	b := c.measurer.Measure(text, maxW, maxH)
	c.entries[key] = b
	return b
}

// Len returns the number of cached boxes.
func (c *TextCache) Len() int {
	return len(c.entries)
}

// Stats returns cache hits and misses since creation.
func (c *TextCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// TerminalMeasurer measures text in character cells: one row per line, width
// in display columns. Words wrap; the last visible line is ellipsized.
type TerminalMeasurer struct{}

// Measure implements Measurer.
func (TerminalMeasurer) Measure(text string, maxW, maxH float64) Box {
	width, height := int(maxW), int(maxH)
	if width <= 0 || height <= 0 {
		return Box{}
	}
	lines := WrapText(text, width)
	if len(lines) > height {
		lines = lines[:height]
		lines[height-1] = ellipsize(lines[height-1], width)
	}
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return Box{W: float64(w), H: float64(len(lines)), Lines: lines}
}

// WrapText wraps text to width display columns. Words longer than width are
// broken; existing newlines are kept.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := ""
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// A wide rune in a one-column box.
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				out = append(out, head)
				word = word[len(head):]
			}
			if word == "" {
				continue
			}
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func ellipsize(s string, width int) string {
	if runewidth.StringWidth(s)+1 <= width {
		return s + "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}
