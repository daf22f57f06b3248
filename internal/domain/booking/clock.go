package booking

import (
	"fmt"
	"time"
)

// All engine time values are integer minutes since midnight in the clinic's
// local civil calendar. Conversion to and from wall-clock strings happens
// here and nowhere else.

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight.
// Exactly five bytes, zero-padded, no surrounding whitespace.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Every conflict check in the engine goes through
// this predicate; no caller re-implements the comparison.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// WeekdayOf returns the calendar weekday of a date, 0=Sunday through
// 6=Saturday, matching the weekday column on working windows and overrides.
func WeekdayOf(date time.Time) int {
	return int(date.Weekday())
}

// ParseDate parses an ISO-8601 calendar date ("2006-01-02").
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return d, nil
}
