package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15", time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("", time.Local)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("uses location", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*3600)
		got, err := ParseDate("2025-01-15", tokyo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Location() != tokyo || got.Hour() != 0 {
			t.Errorf("got %v, want JST midnight", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025", time.UTC)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday afternoon.
	now := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    time.Time
		wantErr error
	}{
		{input: "", want: today},
		{input: "today", want: today},
		{input: "  TODAY ", want: today},
		{input: "tomorrow", want: today.AddDate(0, 0, 1)},
		{input: "wednesday", want: today},
		{input: "Thursday", want: today.AddDate(0, 0, 1)},
		{input: "monday", want: today.AddDate(0, 0, 5)},
		{input: "2025-01-20", want: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{input: "2025-01-15", want: today},
		{input: "2025-01-14", wantErr: ErrDateInPast},
		{input: "next-monday", wantErr: ErrInvalidDateFormat},
		{input: "15/01/2025", wantErr: ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateToHour(t *testing.T) {
	india := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2025, 1, 15, 9, 45, 12, 99, india)
	got := TruncateToHour(in)
	want := time.Date(2025, 1, 15, 9, 0, 0, 0, india)
	if !got.Equal(want) {
		t.Errorf("TruncateToHour() = %v, want %v", got, want)
	}
}

func TestDays(t *testing.T) {
	days := Days(time.Date(2025, 1, 30, 18, 0, 0, 0, time.UTC), 3)
	want := []string{"2025-01-30", "2025-01-31", "2025-02-01"}
	if len(days) != len(want) {
		t.Fatalf("len = %d, want %d", len(days), len(want))
	}
	for i, d := range days {
		if got := d.Format("2006-01-02 15:04"); got != want[i]+" 00:00" {
			t.Errorf("day %d = %s, want %s 00:00", i, got, want[i])
		}
	}
}

func TestLabels(t *testing.T) {
	sat := time.Date(2024, 1, 6, 21, 0, 0, 0, time.UTC)
	if got := DayLabel(sat); got != "1/6 (Sat)" {
		t.Errorf("DayLabel() = %q, want %q", got, "1/6 (Sat)")
	}
	if !IsWeekend(sat) || IsWeekend(sat.AddDate(0, 0, 2)) {
		t.Error("IsWeekend() wrong for Saturday/Monday")
	}
	if got := HourLabel(7); got != "07:00" {
		t.Errorf("HourLabel(7) = %q, want %q", got, "07:00")
	}
}

func TestClockRange(t *testing.T) {
	start := time.Date(2024, 1, 6, 23, 30, 0, 0, time.UTC)
	tests := []struct {
		end  time.Time
		want string
	}{
		{end: start.Add(20 * time.Minute), want: "23:30-23:50"},
		{end: start.Add(time.Hour), want: "23:30-1/7 00:30"},
	}
	for _, tt := range tests {
		if got := ClockRange(start, tt.end); got != tt.want {
			t.Errorf("ClockRange() = %q, want %q", got, tt.want)
		}
	}
}
