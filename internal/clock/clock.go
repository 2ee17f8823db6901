package clock

import "time"

// Clock supplies the current time in the service timezone. Window and
// evaluation-date logic depends on "today", so it is injected rather than
// read from the process clock directly.
type Clock interface {
	Now() time.Time
}

// Real is a Clock backed by the wall clock, localized to Loc.
type Real struct {
	Loc *time.Location
}

func (r Real) Now() time.Time {
	return time.Now().In(r.Loc)
}

// Fixed is a Clock that always returns the same instant. Used in tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns the current calendar day of c at midnight.
func Today(c Clock) time.Time {
	return Midnight(c.Now())
}
