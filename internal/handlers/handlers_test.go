package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalhq/vital-gateway/internal/config"
	"github.com/vitalhq/vital-gateway/internal/identity"
	"github.com/vitalhq/vital-gateway/internal/server"
)

type testGateway struct {
	srv    *server.Server
	tokens *identity.TokenService
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    config.EnvDevelopment,
			RequestTimeout: 2 * time.Second,
		},
		CORS: config.CORSConfig{Origins: []string{"http://localhost:3000"}},
		Body: config.BodyConfig{MaxBytes: 1 << 20},
	}
	tokens := identity.NewTokenService("test-secret", "vital-gateway", time.Hour)
	svc := identity.NewService(identity.NewMemoryUserStore(), tokens)

	srv := server.New(cfg, slog.New(slog.DiscardHandler), server.Options{Verifier: tokens})
	srv.Register(New(svc, cfg.Server.Environment).Routes())
	return &testGateway{srv: srv, tokens: tokens}
}

func (g *testGateway) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	g.srv.Router.ServeHTTP(rec, req)
	return rec
}

func (g *testGateway) token(t *testing.T) string {
	t.Helper()
	token, err := g.tokens.Issue(identity.Identity{UserID: "user-1", Role: identity.RoleUser})
	require.NoError(t, err)
	return token
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestHealthEndpoint(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, "GET", "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := parse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "error")

	data := body["data"].(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "development", data["environment"])
	assert.Contains(t, data, "uptime")
}

func TestVersionEndpoint(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, "GET", "/api/v1/version", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := parse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "error")
	assert.Equal(t, Version, body["data"].(map[string]any)["version"])
}

func TestRegisterAndLogin(t *testing.T) {
	g := newTestGateway(t)

	t.Run("register missing fields", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/auth/register", `{"email":"ada@example.com"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := parse(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Email, password, and name are required", body["error"])
	})

	t.Run("register", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/auth/register",
			`{"email":"ada@example.com","password":"hunter22","name":"Ada"}`, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		data := parse(t, rec)["data"].(map[string]any)
		assert.NotEmpty(t, data["token"])
		assert.Equal(t, "ada@example.com", data["email"])
	})

	t.Run("login", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"hunter22"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		data := parse(t, rec)["data"].(map[string]any)
		assert.NotEmpty(t, data["token"])
		user := data["user"].(map[string]any)
		assert.Equal(t, "user", user["role"])
	})

	t.Run("login missing fields", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/auth/login", `{"email":"ada@example.com"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email and password are required", parse(t, rec)["error"])
	})

	t.Run("login wrong password", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"nope"}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, false, parse(t, rec)["success"])
	})

	t.Run("registered token opens protected routes", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"hunter22"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		token := parse(t, rec)["data"].(map[string]any)["token"].(string)

		rec = g.do(t, "GET", "/api/v1/finance/transactions", "", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	g := newTestGateway(t)
	paths := []struct {
		method, path string
	}{
		{"GET", "/api/v1/finance/transactions"},
		{"GET", "/api/v1/finance/analytics"},
		{"GET", "/api/v1/health/logs"},
		{"GET", "/api/v1/health/assessment"},
		{"POST", "/api/v1/ml/finance/classify-expense"},
		{"POST", "/api/v1/ml/health/assess-risk"},
	}
	for _, tc := range paths {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := g.do(t, tc.method, tc.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, false, parse(t, rec)["success"])
		})
	}
}

func TestCreateTransaction(t *testing.T) {
	g := newTestGateway(t)
	token := g.token(t)

	t.Run("missing amount", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/finance/transactions",
			`{"category":"groceries"}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := parse(t, rec)
		assert.Contains(t, body["error"], "Amount")
	})

	t.Run("valid", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/finance/transactions",
			`{"amount":50,"category":"groceries"}`, token)
		require.Equal(t, http.StatusCreated, rec.Code)
		data := parse(t, rec)["data"].(map[string]any)
		assert.Equal(t, "groceries", data["category"])
		assert.Equal(t, float64(50), data["amount"])
		assert.NotEmpty(t, data["id"])
	})
}

func TestFinanceAnalytics(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, "GET", "/api/v1/finance/analytics", "", g.token(t))

	require.Equal(t, http.StatusOK, rec.Code)
	data := parse(t, rec)["data"].(map[string]any)
	assert.Equal(t, 1250.50, data["totalExpenses"])
	assert.Len(t, data["topCategories"], 3)
}

func TestHealthLogs(t *testing.T) {
	g := newTestGateway(t)
	token := g.token(t)

	t.Run("list", func(t *testing.T) {
		rec := g.do(t, "GET", "/api/v1/health/logs", "", token)
		require.Equal(t, http.StatusOK, rec.Code)
		data := parse(t, rec)["data"].(map[string]any)
		assert.Equal(t, float64(1), data["total"])
	})

	t.Run("create missing weight", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/health/logs", `{"steps":9000}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Weight is required", parse(t, rec)["error"])
	})

	t.Run("create", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/health/logs",
			`{"weight":75,"bloodPressure":"120/80","steps":8500,"sleepHours":7}`, token)
		require.Equal(t, http.StatusCreated, rec.Code)
		data := parse(t, rec)["data"].(map[string]any)
		assert.Equal(t, float64(75), data["weight"])
	})
}

func TestHealthAssessment(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, "GET", "/api/v1/health/assessment", "", g.token(t))

	require.Equal(t, http.StatusOK, rec.Code)
	data := parse(t, rec)["data"].(map[string]any)
	assert.Equal(t, "low", data["riskLevel"])
	assert.Equal(t, float64(85), data["healthScore"])
}

func TestClassifyExpense(t *testing.T) {
	g := newTestGateway(t)
	token := g.token(t)

	t.Run("missing description", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/ml/finance/classify-expense", `{"amount":12}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Description is required", parse(t, rec)["error"])
	})

	t.Run("classify", func(t *testing.T) {
		rec := g.do(t, "POST", "/api/v1/ml/finance/classify-expense",
			`{"description":"weekly shop","amount":42.5}`, token)
		require.Equal(t, http.StatusOK, rec.Code)
		data := parse(t, rec)["data"].(map[string]any)
		assert.Equal(t, "groceries", data["predictedCategory"])
		assert.Equal(t, 0.95, data["confidence"])
	})
}

func TestAssessRisk(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, "POST", "/api/v1/ml/health/assess-risk",
		`{"weight":75,"steps":8000}`, g.token(t))

	require.Equal(t, http.StatusOK, rec.Code)
	data := parse(t, rec)["data"].(map[string]any)
	assert.Equal(t, "low", data["riskLevel"])
	assert.Equal(t, float64(15), data["riskScore"])
}
