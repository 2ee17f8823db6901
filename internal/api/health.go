package api

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewHealthHandler(db *sql.DB, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Check GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("database ping failed")
		writeJSON(w, h.log, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "ok"})
}
