package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/stats"
)

// StatsHandler exposes the weekly aggregation directly, the same numbers the
// coaching prompts are built from.
type StatsHandler struct {
	agg *stats.Aggregator
	clk clock.Clock
	log zerolog.Logger
}

func NewStatsHandler(agg *stats.Aggregator, clk clock.Clock, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{agg: agg, clk: clk, log: log}
}

// Weekly GET /api/me/stats/weekly
func (h *StatsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	weekly, err := h.agg.WeeklyStats(r.Context(), emailFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, weekly)
}
