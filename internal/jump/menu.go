// Package jump implements the date × hour menu used to jump the guide to an
// instant.
package jump

import (
	"errors"
	"time"

	"github.com/javiermolinar/bangumi/internal/dateutil"
)

// DefaultDays is the number of dates offered, starting today.
const DefaultDays = 7

// HoursPerDay is the number of hour slots per date.
const HoursPerDay = 24

// HighlightSpan is how many consecutive slots, starting at the focused one,
// are highlighted.
const HighlightSpan = 3

// ErrSlotNotSelectable is returned when selecting a slot in the past.
var ErrSlotNotSelectable = errors.New("slot is in the past")

// Period colors a slot by time of day.
type Period int

const (
	PeriodMorning Period = iota
	PeriodDay
	PeriodEvening
	PeriodLateNight
)

func (p Period) String() string {
	switch p {
	case PeriodMorning:
		return "morning"
	case PeriodDay:
		return "day"
	case PeriodEvening:
		return "evening"
	}
	return "late-night"
}

// PeriodOf returns the period an hour of day falls in.
func PeriodOf(hour int) Period {
	switch {
	case hour >= 4 && hour <= 10:
		return PeriodMorning
	case hour >= 11 && hour <= 16:
		return PeriodDay
	case hour >= 17 && hour <= 22:
		return PeriodEvening
	}
	return PeriodLateNight
}

// Slot is one (date, hour) cell.
type Slot struct {
	Time       time.Time
	Day, Hour  int
	Selectable bool
	Period     Period
}

// index orders slots day-major.
func (s Slot) index() int {
	return s.Day*HoursPerDay + s.Hour
}

// Menu is the jump grid. Only selectable slots take focus.
type Menu struct {
	days      []time.Time
	slots     [][]Slot
	day, hour int
	hasFocus  bool
}

// New builds a menu of n dates starting at the day of now. A slot is
// selectable when it is not before the current hour.
func New(now time.Time, n int) *Menu {
	if n <= 0 {
		n = DefaultDays
	}
	current := dateutil.TruncateToHour(now)
	m := &Menu{days: dateutil.Days(now, n)}
	m.slots = make([][]Slot, n)
	for d, date := range m.days {
		row := make([]Slot, HoursPerDay)
		for h := range row {
			at := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location())
			row[h] = Slot{
				Time:       at,
				Day:        d,
				Hour:       h,
				Selectable: !at.Before(current),
				Period:     PeriodOf(h),
			}
		}
		m.slots[d] = row
	}
	m.focusFirst()
	return m
}

func (m *Menu) focusFirst() {
	for d := range m.slots {
		for h := range m.slots[d] {
			if m.slots[d][h].Selectable {
				m.day, m.hour, m.hasFocus = d, h, true
				return
			}
		}
	}
	// Nothing selectable: rest on the first slot so the menu still renders.
	m.day, m.hour, m.hasFocus = 0, 0, false
}

// Days returns the menu dates.
func (m *Menu) Days() []time.Time {
	return m.days
}

// Slot returns the slot at (day, hour).
func (m *Menu) Slot(day, hour int) Slot {
	return m.slots[day][hour]
}

// Focused returns the focused slot. ok is false when no slot is selectable.
func (m *Menu) Focused() (Slot, bool) {
	return m.slots[m.day][m.hour], m.hasFocus
}

// Highlighted reports whether s is within the span starting at the focused slot.
func (m *Menu) Highlighted(s Slot) bool {
	if !m.hasFocus {
		return false
	}
	f := m.slots[m.day][m.hour].index()
	return s.index() >= f && s.index() < f+HighlightSpan
}

// Up moves focus one hour earlier, wrapping to the previous date. Past slots
// are never reached, so it stops at the first selectable slot.
func (m *Menu) Up() bool {
	return m.step(-1)
}

// Down moves focus one hour later, wrapping to the next date.
func (m *Menu) Down() bool {
	return m.step(1)
}

func (m *Menu) step(delta int) bool {
	if !m.hasFocus {
		return false
	}
	i := m.slots[m.day][m.hour].index() + delta
	if i < 0 || i >= len(m.slots)*HoursPerDay {
		return false
	}
	s := m.slots[i/HoursPerDay][i%HoursPerDay]
	if !s.Selectable {
		return false
	}
	m.day, m.hour = s.Day, s.Hour
	return true
}

// Left moves focus to the same hour on the previous date.
func (m *Menu) Left() bool {
	return m.shift(-1)
}

// Right moves focus to the same hour on the next date.
func (m *Menu) Right() bool {
	return m.shift(1)
}

func (m *Menu) shift(delta int) bool {
	d := m.day + delta
	if !m.hasFocus || d < 0 || d >= len(m.slots) || !m.slots[d][m.hour].Selectable {
		return false
	}
	m.day = d
	return true
}

// Select returns the focused slot's instant.
func (m *Menu) Select() (time.Time, error) {
	s, ok := m.Focused()
	if !ok || !s.Selectable {
		return time.Time{}, ErrSlotNotSelectable
	}
	return s.Time, nil
}

// SelectAt returns the instant of the slot at (day, hour).
func (m *Menu) SelectAt(day, hour int) (time.Time, error) {
	if day < 0 || day >= len(m.slots) || hour < 0 || hour >= HoursPerDay {
		return time.Time{}, ErrSlotNotSelectable
	}
	s := m.slots[day][hour]
	if !s.Selectable {
		return time.Time{}, ErrSlotNotSelectable
	}
	return s.Time, nil
}
