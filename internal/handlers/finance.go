package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vitalhq/vital-gateway/internal/apperr"
	"github.com/vitalhq/vital-gateway/internal/envelope"
	"github.com/vitalhq/vital-gateway/internal/server"
)

// Placeholder finance handlers. Real transaction storage and analytics
// live in the finance service; the gateway only shapes the contract.

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"transactions": []map[string]any{
			{
				"id":          "txn-1",
				"amount":      50.00,
				"category":    "groceries",
				"date":        time.Now().UTC().Format(time.RFC3339),
				"description": "Weekly groceries",
			},
		},
		"total": 1,
	}))
	return nil
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) error {
	body := server.DecodedBody(r.Context())
	amount, hasAmount := field(body, "amount")
	category, hasCategory := field(body, "category")

	if !hasAmount || !hasCategory {
		return apperr.New(apperr.CodeValidation, "Amount and category are required")
	}

	envelope.Write(w, http.StatusCreated, envelope.OK(map[string]any{
		"id":          uuid.NewString(),
		"amount":      amount,
		"category":    category,
		"description": body["description"],
		"date":        time.Now().UTC().Format(time.RFC3339),
	}))
	return nil
}

func (h *Handlers) FinanceAnalytics(w http.ResponseWriter, r *http.Request) error {
	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"totalExpenses":  1250.50,
		"monthlyAverage": 312.63,
		"topCategories": []map[string]any{
			{"category": "groceries", "amount": 450.00, "percentage": 36},
			{"category": "utilities", "amount": 300.00, "percentage": 24},
			{"category": "entertainment", "amount": 200.00, "percentage": 16},
		},
		"recentTransactions": 10,
	}))
	return nil
}
