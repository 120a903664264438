// Package handlers holds the route handlers dispatched by the gateway.
// The finance, health, and ML handlers are placeholders returning fixed
// payloads; only their input validation is real. Auth handlers delegate
// to the identity service.
package handlers

import (
	"net/http"
	"time"

	"github.com/vitalhq/vital-gateway/internal/identity"
	"github.com/vitalhq/vital-gateway/internal/server"
)

// Version is the API version reported by /api/v1/version.
const Version = "1.0.0"

const apiName = "Vital Personal Finance & Health Assistant API"

type Handlers struct {
	identity    *identity.Service
	environment string
	started     time.Time
}

// New creates the handler set. started feeds the /health uptime field.
func New(identitySvc *identity.Service, environment string) *Handlers {
	return &Handlers{
		identity:    identitySvc,
		environment: environment,
		started:     time.Now(),
	}
}

// Routes is the gateway's static dispatch table.
func (h *Handlers) Routes() []server.Route {
	return []server.Route{
		{Method: http.MethodGet, Pattern: "/health", Handler: h.Health},
		{Method: http.MethodGet, Pattern: "/api/v1/version", Handler: h.APIVersion},

		{Method: http.MethodPost, Pattern: "/api/v1/auth/register", Handler: h.Register},
		{Method: http.MethodPost, Pattern: "/api/v1/auth/login", Handler: h.Login},

		{Method: http.MethodGet, Pattern: "/api/v1/finance/transactions", Handler: h.ListTransactions, RequireAuth: true},
		{Method: http.MethodPost, Pattern: "/api/v1/finance/transactions", Handler: h.CreateTransaction, RequireAuth: true},
		{Method: http.MethodGet, Pattern: "/api/v1/finance/analytics", Handler: h.FinanceAnalytics, RequireAuth: true},

		{Method: http.MethodGet, Pattern: "/api/v1/health/logs", Handler: h.ListHealthLogs, RequireAuth: true},
		{Method: http.MethodPost, Pattern: "/api/v1/health/logs", Handler: h.CreateHealthLog, RequireAuth: true},
		{Method: http.MethodGet, Pattern: "/api/v1/health/assessment", Handler: h.HealthAssessment, RequireAuth: true},

		{Method: http.MethodPost, Pattern: "/api/v1/ml/finance/classify-expense", Handler: h.ClassifyExpense, RequireAuth: true},
		{Method: http.MethodPost, Pattern: "/api/v1/ml/health/assess-risk", Handler: h.AssessRisk, RequireAuth: true},
	}
}

// field returns the named body field, treating nil values and empty
// strings as absent. Non-string JSON values count as present.
func field(body map[string]any, name string) (any, bool) {
	v, ok := body[name]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

func stringField(body map[string]any, name string) string {
	v, ok := field(body, name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
