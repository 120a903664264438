package handlers

import (
	"net/http"
	"time"

	"github.com/vitalhq/vital-gateway/internal/envelope"
)

// Health is the liveness endpoint.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.started).Seconds(),
		"environment": h.environment,
	}))
	return nil
}

// APIVersion reports static version metadata.
func (h *Handlers) APIVersion(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"version":   Version,
		"name":      apiName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
	return nil
}
