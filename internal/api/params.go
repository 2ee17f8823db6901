package api

import (
	"fmt"
	"net/http"
	"time"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
)

// dateParam reads the optional ?date=YYYY-MM-DD query parameter, defaulting
// to the current date.
func dateParam(r *http.Request, clk clock.Clock) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return clock.Today(clk), nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, coach.ErrValidation)
	}
	return d, nil
}
