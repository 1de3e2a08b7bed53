package services

import (
	"testing"
	"time"
)

func TestDueDateTooEarly(t *testing.T) {
	now := time.Date(2026, time.March, 15, 23, 59, 0, 0, time.Local)

	cases := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"yesterday", time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local), true},
		{"today", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local), false},
		{"tomorrow", time.Date(2026, time.March, 16, 0, 0, 0, 0, time.Local), false},
		{"last day of previous month", time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local), true},
		{"previous year", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DueDateTooEarly(tc.due, now)
			if got != tc.want {
				t.Fatalf("DueDateTooEarly(%v, %v) = %v, want %v", tc.due, now, got, tc.want)
			}
		})
	}
}

func TestDueDateTooEarly_TimeOfDayIrrelevant(t *testing.T) {
	// Due at midnight, "now" almost a day later on the same date.
	due := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, time.March, 15, 23, 59, 59, 0, time.Local)

	if DueDateTooEarly(due, now) {
		t.Fatalf("a due date equal to today must be acceptable")
	}
}
