package dateutil

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.January, 2024, 31},
		{time.February, 2024, 29}, // leap year
		{time.February, 2023, 28},
		{time.February, 2000, 29}, // divisible by 400
		{time.February, 1900, 28}, // divisible by 100, not 400
		{time.April, 2025, 30},
		{time.December, 2025, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.month, c.year); got != c.want {
			t.Fatalf("DaysInMonth(%s %d) = %d, want %d", c.month, c.year, got, c.want)
		}
	}
}

func TestFirstWeekday(t *testing.T) {
	// 2025-06-01 was a Sunday, 2025-07-01 a Tuesday.
	if got := FirstWeekday(time.June, 2025); got != 0 {
		t.Fatalf("FirstWeekday(June 2025) = %d, want 0", got)
	}
	if got := FirstWeekday(time.July, 2025); got != 2 {
		t.Fatalf("FirstWeekday(July 2025) = %d, want 2", got)
	}
}

func TestKeyZeroPadding(t *testing.T) {
	if got := Key(2025, time.March, 7); got != "2025-03-07" {
		t.Fatalf("Key = %q, want 2025-03-07", got)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, key := range []string{"2024-02-29", "1999-12-31", "2025-01-01"} {
		y, m, d, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", key, err)
		}
		if back := Key(y, m, d); back != key {
			t.Fatalf("round trip %q -> %q", key, back)
		}
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	if _, _, _, err := ParseKey("not-a-date"); err == nil {
		t.Fatal("ParseKey accepted garbage input")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, time.May, 3, 1, 0, 0, 0, time.Local)
	b := time.Date(2025, time.May, 3, 23, 59, 0, 0, time.Local)
	c := time.Date(2025, time.May, 4, 0, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Fatal("SameDay(a, b) = false, want true")
	}
	if SameDay(a, c) {
		t.Fatal("SameDay(a, c) = true, want false")
	}
}
