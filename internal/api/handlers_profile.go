package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/profile"
)

// ProfileHandler is the HTTP transport for the health profile.
type ProfileHandler struct {
	store profile.Store
	clk   clock.Clock
	log   zerolog.Logger
}

func NewProfileHandler(store profile.Store, clk clock.Clock, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, clk: clk, log: log}
}

// Get GET /api/me/profile/health
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.HealthProfile(r.Context(), emailFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, p)
}

// Put PUT /api/me/profile/health
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var p profile.HealthProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p.Email = emailFromContext(r.Context())
	p.UpdatedAt = h.clk.Now().UTC()

	if err := h.store.UpsertHealthProfile(r.Context(), &p); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, &p)
}
