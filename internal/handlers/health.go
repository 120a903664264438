package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vitalhq/vital-gateway/internal/apperr"
	"github.com/vitalhq/vital-gateway/internal/envelope"
	"github.com/vitalhq/vital-gateway/internal/server"
)

// Placeholder health-domain handlers, same contract-only status as the
// finance ones.

func (h *Handlers) ListHealthLogs(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"logs": []map[string]any{
			{
				"id":            "health-log-1",
				"date":          time.Now().UTC().Format(time.RFC3339),
				"weight":        75,
				"bloodPressure": "120/80",
				"steps":         8500,
				"sleepHours":    7,
			},
		},
		"total": 1,
	}))
	return nil
}

func (h *Handlers) CreateHealthLog(w http.ResponseWriter, r *http.Request) error {
	body := server.DecodedBody(r.Context())
	weight, hasWeight := field(body, "weight")
	if !hasWeight {
		return apperr.New(apperr.CodeValidation, "Weight is required")
	}

	envelope.Write(w, http.StatusCreated, envelope.OK(map[string]any{
		"id":            uuid.NewString(),
		"weight":        weight,
		"bloodPressure": body["bloodPressure"],
		"steps":         body["steps"],
		"sleepHours":    body["sleepHours"],
		"date":          time.Now().UTC().Format(time.RFC3339),
	}))
	return nil
}

func (h *Handlers) HealthAssessment(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"riskLevel": "low",
		"recommendations": []string{
			"Maintain current exercise routine",
			"Increase water intake",
			"Monitor sleep patterns",
		},
		"healthScore": 85,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	}))
	return nil
}
