package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
)

// MealPlanHandler is the HTTP transport for daily AI meal plans.
type MealPlanHandler struct {
	svc *coach.MealPlanService
	clk clock.Clock
	log zerolog.Logger
}

func NewMealPlanHandler(svc *coach.MealPlanService, clk clock.Clock, log zerolog.Logger) *MealPlanHandler {
	return &MealPlanHandler{svc: svc, clk: clk, log: log}
}

// Generate POST /api/me/ai-meal-plans/generate
//
// Returns the stored plan when one already exists for the date; only a first
// call triggers generation.
func (h *MealPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	email := emailFromContext(r.Context())
	result, err := h.svc.Generate(r.Context(), email, date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// Daily GET /api/me/ai-meal-plans/daily
//
// Read-only: never generates, returns an empty result when no plan exists.
func (h *MealPlanHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	email := emailFromContext(r.Context())
	result, err := h.svc.Existing(r.Context(), email, date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}
