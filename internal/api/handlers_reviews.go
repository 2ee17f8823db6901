package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
)

// ReviewHandler is the HTTP transport for the weekly workout and nutrition
// evaluations. Both follow the same shape: a run endpoint that generates or
// fetches, and a read-only summary endpoint.
type ReviewHandler struct {
	exercise  *coach.ExerciseReviewService
	nutrition *coach.NutritionReviewService
	clk       clock.Clock
	log       zerolog.Logger
}

func NewReviewHandler(exercise *coach.ExerciseReviewService, nutrition *coach.NutritionReviewService, clk clock.Clock, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{exercise: exercise, nutrition: nutrition, clk: clk, log: log}
}

// RunWorkout POST /api/me/ai-workout-evaluations/run
func (h *ReviewHandler) RunWorkout(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	result, err := h.exercise.Evaluate(r.Context(), emailFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// WorkoutSummary GET /api/me/ai-workout-evaluations/summary
func (h *ReviewHandler) WorkoutSummary(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	result, err := h.exercise.Get(r.Context(), emailFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// RunNutrition POST /api/me/ai-nutrition-evaluations/run
func (h *ReviewHandler) RunNutrition(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	result, err := h.nutrition.Evaluate(r.Context(), emailFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// NutritionSummary GET /api/me/ai-nutrition-evaluations/summary
func (h *ReviewHandler) NutritionSummary(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	result, err := h.nutrition.Get(r.Context(), emailFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}
