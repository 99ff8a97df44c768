package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Tables    int       `json:"tables"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	tables, err := h.HealthService.Check(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("health check failed")
		writeSuccess(w, HealthResponse{Status: "unavailable", Timestamp: time.Now().UTC()}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Timestamp: time.Now().UTC(), Tables: tables}, http.StatusOK)
}
