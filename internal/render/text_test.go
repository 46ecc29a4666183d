package render

import (
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "Morning News", width: 20, want: []string{"Morning News"}},
		{name: "wraps on words", text: "Morning News Today", width: 12, want: []string{"Morning News", "Today"}},
		{name: "breaks long words", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "keeps newlines", text: "one\ntwo", width: 10, want: []string{"one", "two"}},
		{name: "wide runes", text: "ニュース", width: 4, want: []string{"ニュ", "ース"}},
		{name: "wide rune in one column", text: "ニュ", width: 1, want: []string{"ニ", "ュ"}},
		{name: "blank", text: "   ", width: 10, want: nil},
		{name: "zero width", text: "news", width: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTerminalMeasurer(t *testing.T) {
	var m TerminalMeasurer

	b := m.Measure("Morning News Today", 12, 5)
	if b.W != 12 || b.H != 2 {
		t.Errorf("Measure() = %vx%v, want 12x2", b.W, b.H)
	}

	b = m.Measure("one two three four", 9, 1)
	if want := []string{"one two…"}; !reflect.DeepEqual(b.Lines, want) {
		t.Errorf("truncated lines = %q, want %q", b.Lines, want)
	}

	b = m.Measure("abcdefgh abcdefgh", 8, 1)
	if want := []string{"abcdefg…"}; !reflect.DeepEqual(b.Lines, want) {
		t.Errorf("full last line = %q, want %q", b.Lines, want)
	}

	if b := m.Measure("news", 10, 0.5); len(b.Lines) != 0 || b.H != 0 {
		t.Errorf("Measure() with no rows = %+v, want empty", b)
	}
}

func TestTextCache(t *testing.T) {
	m := &fixedMeasurer{}
	c := NewTextCache(m)
	c.Sync(1)

	c.Get("a", "alpha", 100, 20)
	c.Get("a", "alpha", 100, 20)
	c.Get("b", "beta", 100, 20)
	if hits, misses := c.Stats(); hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d, %d, want 1, 2", hits, misses)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Sync(1)
	if c.Len() != 2 {
		t.Errorf("Sync(same generation) dropped entries")
	}
	c.Sync(2)
	if c.Len() != 0 {
		t.Errorf("Len() after new generation = %d, want 0", c.Len())
	}
}

func TestGenreOf(t *testing.T) {
	tests := []struct {
		major string
		want  Genre
	}{
		{"ニュース・報道", GenreNews},
		{"スポーツ", GenreSports},
		{"アニメ・特撮", GenreAnime},
		{"drama", GenreDrama},
		{"Movies", GenreMovies},
		{"", GenreOther},
		{"unknown", GenreOther},
	}
	for _, tt := range tests {
		if got := GenreOf(tt.major); got != tt.want {
			t.Errorf("GenreOf(%q) = %v, want %v", tt.major, got, tt.want)
		}
	}
}
