// Package dateutil provides date parsing, truncation and labels for the guide.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD, today, tomorrow or a weekday name")
	ErrDateInPast        = errors.New("date is before today")
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a YYYY-MM-DD date in loc. An empty string is today.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseRelativeDate parses a date relative to now:
//   - "" or "today"
//   - "tomorrow"
//   - a weekday name, meaning its next occurrence (today counts)
//   - YYYY-MM-DD
//
// Input is case-insensitive. Dates before today return ErrDateInPast.
func ParseRelativeDate(s string, now time.Time) (time.Time, error) {
	today := TruncateToDay(now)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	if wd, ok := weekdayMap[input]; ok {
		return nextWeekday(today, wd), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, now.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if result.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	return result, nil
}

// nextWeekday returns the first day on or after today falling on target.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, days)
}

// TruncateToDay returns t with the time set to local midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TruncateToHour returns t with minutes and below cleared, in t's location.
// Unlike time.Truncate this respects zones with sub-hour offsets.
func TruncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// Days returns n consecutive midnights starting at the day of from.
func Days(from time.Time, n int) []time.Time {
	start := TruncateToDay(from)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// DayLabel formats a date as "M/D (Mon)".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s %s", ShortDate(t), WeekdayLabel(t))
}

// ShortDate formats a date as "M/D".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// WeekdayLabel formats the weekday as "(Mon)".
func WeekdayLabel(t time.Time) string {
	return "(" + t.Weekday().String()[:3] + ")"
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// HourLabel formats an hour of day as "HH:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ClockRange formats a program's time span as "15:04-16:00". The end carries
// its date when it falls on another day.
func ClockRange(start, end time.Time) string {
	end = end.In(start.Location())
	if TruncateToDay(start).Equal(TruncateToDay(end)) {
		return start.Format("15:04") + "-" + end.Format("15:04")
	}
	return start.Format("15:04") + "-" + ShortDate(end) + " " + end.Format("15:04")
}
