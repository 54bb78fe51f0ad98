package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "03/02/2026", "2026-3-2", "2026-13-01", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestFormatDateRoundTrips(t *testing.T) {
	d, _ := ParseDate("2026-12-31")
	if got := FormatDate(d); got != "2026-12-31" {
		t.Errorf("FormatDate = %q, want 2026-12-31", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2026-03-01")
	b, _ := ParseDate("2026-03-05")

	if got := DaysBetween(a, b); got != 4 {
		t.Errorf("DaysBetween forward = %d, want 4", got)
	}
	if got := DaysBetween(b, a); got != -4 {
		t.Errorf("DaysBetween backward = %d, want -4", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("DaysBetween same day = %d, want 0", got)
	}

	// Month boundary
	x, _ := ParseDate("2026-02-27")
	y, _ := ParseDate("2026-03-02")
	if got := DaysBetween(x, y); got != 3 {
		t.Errorf("DaysBetween across February = %d, want 3", got)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween = %d, want 1", got)
	}
}
