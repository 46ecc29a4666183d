package epg

import (
	"testing"
	"time"
)

func TestParseTimeOrFallback(t *testing.T) {
	fallback := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "rfc3339 utc", raw: "2024-01-01T01:00:00Z", want: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)},
		{name: "rfc3339 offset", raw: "2024-01-01T10:00:00+09:00", want: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)},
		{name: "rfc3339 nano", raw: "2024-01-01T01:00:00.500Z", want: time.Date(2024, 1, 1, 1, 0, 0, 5e8, time.UTC)},
		{name: "xmltv", raw: "20240101100000 +0900", want: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)},
		{name: "surrounding space", raw: "  2024-01-01T01:00:00Z ", want: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)},
		{name: "empty", raw: "", want: fallback},
		{name: "garbage", raw: "tomorrow-ish", want: fallback},
		{name: "date only", raw: "2024-01-01", want: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimeOrFallback(tt.raw, fallback)
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimeOrFallback(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTimeLocalLayout(t *testing.T) {
	got, ok := ParseTime("2024-01-01T09:30:00")
	if !ok {
		t.Fatal("ParseTime() ok = false, want true")
	}
	want := time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseTime() = %v, want %v", got, want)
	}
}

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{name: "same instant", at: base, want: 0},
		{name: "one hour", at: base.Add(time.Hour), want: 60},
		{name: "partial minute truncates", at: base.Add(90 * time.Second), want: 1},
		{name: "before base", at: base.Add(-2 * time.Hour), want: -120},
		{name: "partial negative truncates toward zero", at: base.Add(-90 * time.Second), want: -1},
		{name: "fourteen days", at: base.Add(14 * 24 * time.Hour), want: 20160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesBetween(base, tt.at); got != tt.want {
				t.Errorf("MinutesBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindowFor(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 42, 17, 0, time.UTC)
	w := WindowFor(now, 2*time.Hour, 14*24*time.Hour)

	wantBase := time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC)
	if !w.Base.Equal(wantBase) {
		t.Fatalf("Base = %v, want %v", w.Base, wantBase)
	}
	if got := w.Minutes(); got != 20160 {
		t.Fatalf("Minutes() = %d, want 20160", got)
	}
	if !w.Contains(now) {
		t.Errorf("Contains(now) = false, want true")
	}
	if w.Contains(w.Limit) {
		t.Errorf("Contains(limit) = true, want false")
	}
}

func TestWindowForHalfHourZone(t *testing.T) {
	zone := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 3, 10, 9, 10, 0, 0, zone)
	w := WindowFor(now, 0, time.Hour)

	want := time.Date(2024, 3, 10, 9, 0, 0, 0, zone)
	if !w.Base.Equal(want) {
		t.Errorf("Base = %v, want %v", w.Base, want)
	}
}

func TestWindowClampMinute(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Base: base, Limit: base.Add(6 * time.Hour)}

	tests := []struct {
		in, want int
	}{
		{in: -120, want: 0},
		{in: 0, want: 0},
		{in: 90, want: 90},
		{in: 360, want: 360},
		{in: 1000, want: 360},
	}
	for _, tt := range tests {
		if got := w.ClampMinute(tt.in); got != tt.want {
			t.Errorf("ClampMinute(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSafeOffsets(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		program   Program
		wantStart int
		wantDur   int
	}{
		{
			name:      "normal",
			program:   Program{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)},
			wantStart: 60,
			wantDur:   60,
		},
		{
			name:      "missing end falls back to thirty minutes",
			program:   Program{Start: base.Add(time.Hour)},
			wantStart: 60,
			wantDur:   30,
		},
		{
			name:      "inverted end falls back to thirty minutes",
			program:   Program{Start: base.Add(time.Hour), End: base},
			wantStart: 60,
			wantDur:   30,
		},
		{
			name:      "missing start uses base",
			program:   Program{End: base.Add(10 * time.Minute)},
			wantStart: 0,
			wantDur:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, dur := SafeOffsets(tt.program, base)
			if start != tt.wantStart || dur != tt.wantDur {
				t.Errorf("SafeOffsets() = (%d, %d), want (%d, %d)", start, dur, tt.wantStart, tt.wantDur)
			}
		})
	}
}
