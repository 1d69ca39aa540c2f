// Package dateutil provides the calendar arithmetic behind the attendance
// ledger: month lengths, grid offsets, and the YYYY-MM-DD date keys that
// identify entries.
package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical date key format.
const KeyLayout = "2006-01-02"

// DaysInMonth returns the number of calendar days in the given month.
// Day 0 of the following month rolls back to the last day of this one,
// which handles leap years via the Gregorian rules in package time.
func DaysInMonth(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of the month, 0 = Sunday.
// Used for the leading blank cells in a calendar grid.
func FirstWeekday(month time.Month, year int) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Key formats a calendar date as a zero-padded YYYY-MM-DD date key.
func Key(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// KeyFor returns the date key for t in t's location.
func KeyFor(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a date key back into its (year, month, day) triple.
// Round-trips with Key for any valid calendar date.
func ParseKey(key string) (year int, month time.Month, day int, err error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing date key %q: %w", key, err)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthName returns the English month name.
func MonthName(month time.Month) string {
	return month.String()
}
