package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/records"
)

// maxRecordsPerDay mirrors the aggregation's per-day read bound.
const maxRecordsPerDay = 1000

// RecordHandler is the HTTP transport for raw diet and exercise records.
type RecordHandler struct {
	store records.Store
	clk   clock.Clock
	log   zerolog.Logger
}

func NewRecordHandler(store records.Store, clk clock.Clock, log zerolog.Logger) *RecordHandler {
	return &RecordHandler{store: store, clk: clk, log: log}
}

// ListDiets GET /api/me/diets
func (h *RecordHandler) ListDiets(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	recs, err := h.store.DietRecordsByDate(r.Context(), emailFromContext(r.Context()), date, maxRecordsPerDay)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if recs == nil {
		recs = []records.DietRecord{}
	}
	writeJSON(w, h.log, http.StatusOK, map[string]any{"records": recs, "count": len(recs)})
}

// CreateDiet POST /api/me/diets
func (h *RecordHandler) CreateDiet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecordDate string         `json:"recordDate"`
		MealType   string         `json:"mealType"`
		Items      []records.Food `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.MealType) == "" {
		writeError(w, h.log, http.StatusBadRequest, "mealType is required")
		return
	}
	date, err := h.recordDate(req.RecordDate)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	rec := &records.DietRecord{
		Email:      emailFromContext(r.Context()),
		RecordDate: date,
		MealType:   req.MealType,
		Items:      req.Items,
		CreatedAt:  h.clk.Now().UTC(),
	}
	if err := h.store.InsertDietRecord(r.Context(), rec); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, rec)
}

// ListExercises GET /api/me/exercises
func (h *RecordHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	recs, err := h.store.ExerciseRecordsByDate(r.Context(), emailFromContext(r.Context()), date, maxRecordsPerDay)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if recs == nil {
		recs = []records.ExerciseRecord{}
	}
	writeJSON(w, h.log, http.StatusOK, map[string]any{"records": recs, "count": len(recs)})
}

// CreateExercise POST /api/me/exercises
func (h *RecordHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecordDate      string   `json:"recordDate"`
		Name            string   `json:"name"`
		DurationMinutes *float64 `json:"durationMinutes"`
		Calories        *float64 `json:"calories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, h.log, http.StatusBadRequest, "name is required")
		return
	}
	date, err := h.recordDate(req.RecordDate)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	rec := &records.ExerciseRecord{
		Email:           emailFromContext(r.Context()),
		RecordDate:      date,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Calories:        req.Calories,
		CreatedAt:       h.clk.Now().UTC(),
	}
	if err := h.store.InsertExerciseRecord(r.Context(), rec); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, rec)
}

func (h *RecordHandler) recordDate(raw string) (time.Time, error) {
	if raw == "" {
		return clock.Today(h.clk), nil
	}
	return time.Parse(time.DateOnly, raw)
}
