// Package week resolves calendar dates to their Monday-start week and clamps
// review reference dates to a concrete evaluation day inside that week.
package week

import (
	"time"

	"ai-health-coach/internal/clock"
)

// Window is a Monday..Sunday span. End is always Start plus six days.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOf returns the previous-or-same Monday of d, at midnight.
func StartOf(d time.Time) time.Time {
	d = clock.Midnight(d)
	offset := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// EndOf returns the Sunday of the week containing d, at midnight.
func EndOf(d time.Time) time.Time {
	return StartOf(d).AddDate(0, 0, 6)
}

// Of returns the week window containing d.
func Of(d time.Time) Window {
	start := StartOf(d)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// Day returns the i-th day of the window (0 = Monday).
func (w Window) Day(i int) time.Time {
	return w.Start.AddDate(0, 0, i)
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	d = clock.Midnight(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// ClampEvaluationDate maps a reference date to the day a weekly review is
// computed "as of". The result is always inside the reference date's week and
// never beyond today:
//
//   - the week has not started yet: its Monday;
//   - the week is fully in the past: its Sunday;
//   - today is mid-week: the reference date, clamped into [Monday, today].
func ClampEvaluationDate(ref, now time.Time) time.Time {
	ref = clock.Midnight(ref)
	now = clock.Midnight(now)

	weekStart := StartOf(ref)
	weekEnd := weekStart.AddDate(0, 0, 6)

	if now.Before(weekStart) {
		return weekStart
	}
	if now.After(weekEnd) {
		return weekEnd
	}
	if ref.Before(weekStart) {
		return weekStart
	}
	if ref.After(now) {
		return now
	}
	return ref
}
