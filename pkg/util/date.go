package util

import (
	"fmt"
	"time"
)

// DayLayout is the calendar day format used for series dates and overlay keys.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// FormatDay renders the UTC calendar day of t.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DayStart truncates t to UTC midnight.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the span from a to b in days as a real number.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// DayFromMillis returns the UTC calendar day of an epoch millisecond timestamp.
func DayFromMillis(ms int64) string {
	return FormatDay(time.UnixMilli(ms))
}
