package booking

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"12:05", 725, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"09-00", 0, true},
		{"0900", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
		{"09:00:00", 0, true},
		{"12:3a", 0, true},
		{"1a:30", 0, true},
		{" 9:30", 0, true},
		{"09:30 ", 0, true},
		{"-9:30", 0, true},
		{"09:-5", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tt.in, got)
			} else if !errors.Is(err, ErrMalformedTime) {
				t.Errorf("ParseClock(%q): error is not ErrMalformedTime: %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{570, "09:30"},
		{725, "12:05"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseClock_FormatRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m += 7 {
		s := FormatClock(m)
		got, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(FormatClock(%d)) error: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip %d -> %q -> %d", m, s, got)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 540, 570, 540, 570, true},
		{"partial", 540, 570, 560, 600, true},
		{"contained", 540, 600, 550, 560, true},
		{"touching end", 540, 570, 570, 600, false},
		{"touching start", 570, 600, 540, 570, false},
		{"disjoint before", 540, 570, 600, 630, false},
		{"disjoint after", 600, 630, 540, 570, false},
		{"one minute shared", 540, 571, 570, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
			// The predicate is symmetric in its two intervals.
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v (symmetry)",
					tt.bStart, tt.bEnd, tt.aStart, tt.aEnd, got, tt.want)
			}
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2026-09-06 is a Sunday.
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		d := sunday.AddDate(0, 0, i)
		if got := WeekdayOf(d); got != i {
			t.Errorf("WeekdayOf(%s) = %d, want %d", d.Format("2006-01-02"), got, i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.September || d.Day() != 7 {
		t.Errorf("unexpected date: %v", d)
	}

	for _, bad := range []string{"", "07-09-2026", "2026/09/07", "2026-13-01", "tomorrow"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseDate(%q): expected ErrValidation, got %v", bad, err)
		}
	}
}
