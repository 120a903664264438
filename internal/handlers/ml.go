package handlers

import (
	"net/http"

	"github.com/vitalhq/vital-gateway/internal/apperr"
	"github.com/vitalhq/vital-gateway/internal/envelope"
	"github.com/vitalhq/vital-gateway/internal/server"
)

// Placeholder inference handlers; the real model service sits behind
// these routes.

func (h *Handlers) ClassifyExpense(w http.ResponseWriter, r *http.Request) error {
	body := server.DecodedBody(r.Context())
	description, hasDescription := field(body, "description")
	if !hasDescription {
		return apperr.New(apperr.CodeValidation, "Description is required")
	}

	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"description":       description,
		"amount":            body["amount"],
		"predictedCategory": "groceries",
		"confidence":        0.95,
	}))
	return nil
}

func (h *Handlers) AssessRisk(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"riskLevel": "low",
		"riskScore": 15,
		"recommendations": []string{
			"Continue current health routine",
			"Increase daily steps to 10000",
		},
	}))
	return nil
}
