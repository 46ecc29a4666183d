package epg

import (
	"strings"
	"time"
)

// MinProgramDuration is the shortest span a program or gap may cover.
const MinProgramDuration = time.Minute

// offsetFallbackDuration is used for layout when an entry's end cannot be read.
const offsetFallbackDuration = 30 * time.Minute

// timeLayouts lists accepted upstream time formats, most common first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"20060102150405 -0700",
	"20060102150405",
}

// ParseTime parses an upstream time string.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimeOrFallback parses raw, returning fallback on any failure.
func ParseTimeOrFallback(raw string, fallback time.Time) time.Time {
	if t, ok := ParseTime(raw); ok {
		return t
	}
	return fallback
}

// MinutesBetween returns whole minutes from base to t, truncated toward zero.
// The result is negative when t is before base.
func MinutesBetween(base, t time.Time) int {
	return int(t.Sub(base) / time.Minute)
}

// Window is the fixed [Base, Limit) interval a guide covers.
type Window struct {
	Base  time.Time
	Limit time.Time
}

// WindowFor returns the window for a refresh at now: Base is now-lead truncated
// to the hour, Limit is Base+length.
func WindowFor(now time.Time, lead, length time.Duration) Window {
	t := now.Add(-lead)
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return Window{Base: base, Limit: base.Add(length)}
}

// Minutes returns the window length in minutes.
func (w Window) Minutes() int {
	return MinutesBetween(w.Base, w.Limit)
}

// Contains reports whether t falls within [Base, Limit).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Base) && t.Before(w.Limit)
}

// ClampMinute clamps a minute offset into [0, Minutes()].
func (w Window) ClampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if total := w.Minutes(); m > total {
		return total
	}
	return m
}

// SafeOffsets returns the start offset and duration of p in minutes relative to base.
// A zero end falls back to start plus thirty minutes.
func SafeOffsets(p Program, base time.Time) (startMin, durationMin int) {
	start := p.Start
	if start.IsZero() {
		start = base
	}
	end := p.End
	if end.IsZero() || !end.After(start) {
		end = start.Add(offsetFallbackDuration)
	}
	return MinutesBetween(base, start), MinutesBetween(start, end)
}
