package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
)

// ChatHandler is the HTTP transport for the daily coaching chat.
type ChatHandler struct {
	svc *coach.ChatService
	clk clock.Clock
	log zerolog.Logger
}

func NewChatHandler(svc *coach.ChatService, clk clock.Clock, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, clk: clk, log: log}
}

// Send POST /api/me/ai-chat/send
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	email := emailFromContext(r.Context())
	transcript, err := h.svc.Send(r.Context(), email, date, req.Message)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, transcript)
}

// History GET /api/me/ai-chat/history
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.clk)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	email := emailFromContext(r.Context())
	transcript, err := h.svc.History(r.Context(), email, date)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, transcript)
}
