package stats

import (
	"testing"
	"time"
)

func TestStartOfISOWeek(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// Wednesday
		{time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		// Monday midnight is its own week start
		{time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the preceding Monday
		{time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		// Jan 1 2025 (Wednesday) sits in ISO week 1 starting Dec 30 2024
		{time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
		// Jan 1 2021 (Friday) sits in ISO week 53 of 2020
		{time.Date(2021, 1, 1, 8, 0, 0, 0, time.UTC), time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := startOfISOWeek(tc.now)
		if !got.Equal(tc.want) {
			t.Fatalf("startOfISOWeek(%v) = %v, want %v", tc.now, got, tc.want)
		}
		gy, gw := got.ISOWeek()
		ny, nw := tc.now.ISOWeek()
		if gy != ny || gw != nw {
			t.Fatalf("week start %v is ISO %d-%d, now is %d-%d", got, gy, gw, ny, nw)
		}
	}
}

func TestWindowsAt_LocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 3, 5, 22, 0, 0, 0, loc) // 03:00 UTC on Mar 6

	w := WindowsAt(now)
	if want := time.Date(2025, 3, 5, 0, 0, 0, 0, loc); !w.Day.Equal(want) {
		t.Fatalf("day = %v, want %v", w.Day, want)
	}
	if want := time.Date(2025, 3, 3, 0, 0, 0, 0, loc); !w.Week.Equal(want) {
		t.Fatalf("week = %v, want %v", w.Week, want)
	}
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, loc); !w.Month.Equal(want) {
		t.Fatalf("month = %v, want %v", w.Month, want)
	}
	if want := time.Date(2025, 1, 1, 0, 0, 0, 0, loc); !w.Year.Equal(want) {
		t.Fatalf("year = %v, want %v", w.Year, want)
	}

	b := w.Bounds()
	if len(b) != 4 || b[0].Location() != time.UTC {
		t.Fatalf("bounds = %v", b)
	}
	if want := time.Date(2025, 3, 5, 5, 0, 0, 0, time.UTC); !b[0].Equal(want) {
		t.Fatalf("day bound = %v, want %v", b[0], want)
	}
	if want := time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC); !b[3].Equal(want) {
		t.Fatalf("year bound = %v, want %v", b[3], want)
	}
}
