package handlers

import (
	"net/http"

	"github.com/vitalhq/vital-gateway/internal/apperr"
	"github.com/vitalhq/vital-gateway/internal/envelope"
	"github.com/vitalhq/vital-gateway/internal/server"
)

// Register creates an account via the identity service.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) error {
	body := server.DecodedBody(r.Context())
	email := stringField(body, "email")
	password := stringField(body, "password")
	name := stringField(body, "name")

	if email == "" || password == "" || name == "" {
		return apperr.New(apperr.CodeValidation, "Email, password, and name are required")
	}

	cred, err := h.identity.Register(r.Context(), email, password, name)
	if err != nil {
		return err
	}

	envelope.Write(w, http.StatusCreated, envelope.OK(map[string]any{
		"userId":  cred.UserID,
		"email":   cred.Email,
		"name":    cred.Name,
		"token":   cred.Token,
		"message": "User registered successfully",
	}))
	return nil
}

// Login exchanges email+password for a token via the identity service.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) error {
	body := server.DecodedBody(r.Context())
	email := stringField(body, "email")
	password := stringField(body, "password")

	if email == "" || password == "" {
		return apperr.New(apperr.CodeValidation, "Email and password are required")
	}

	cred, err := h.identity.Login(r.Context(), email, password)
	if err != nil {
		return err
	}

	envelope.Write(w, http.StatusOK, envelope.OK(map[string]any{
		"userId": cred.UserID,
		"email":  cred.Email,
		"token":  cred.Token,
		"user": map[string]any{
			"id":    cred.UserID,
			"email": cred.Email,
			"name":  cred.Name,
			"role":  string(cred.Role),
		},
	}))
	return nil
}
