package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/coach"
	"ai-health-coach/internal/llm"
)

// errorResponse is the standard error payload.
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, statusCode int, message string) {
	writeJSON(w, log, statusCode, errorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	})
}

// writeServiceError maps engine errors to HTTP statuses. Upstream and
// configuration failures of the model gateway deliberately collapse to a
// generic 500 so credentials and provider details stay out of responses.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, coach.ErrValidation):
		writeError(w, log, http.StatusBadRequest, err.Error())
	case errors.Is(err, coach.ErrNotFound):
		writeError(w, log, http.StatusNotFound, err.Error())
	case errors.Is(err, coach.ErrConflict):
		writeError(w, log, http.StatusConflict, err.Error())
	case errors.Is(err, llm.ErrNotConfigured), errors.Is(err, llm.ErrUpstream):
		log.Error().Err(err).Msg("model gateway failure")
		writeError(w, log, http.StatusInternalServerError, "AI service is unavailable")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, log, http.StatusInternalServerError, "internal server error")
	}
}
