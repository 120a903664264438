package server

import (
	"net/http"
	"strings"

	"github.com/vitalhq/vital-gateway/internal/apperr"
)

// requireAuth guards routes flagged as authenticated. It extracts the
// bearer credential from the Authorization header, verifies it against
// the identity service, and attaches the resulting identity to the
// request context. Missing and invalid credentials both render 401; the
// distinction survives only in the logs.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			if s.metrics != nil {
				s.metrics.AuthFailures.Inc()
			}
			s.fail(w, r, apperr.New(apperr.CodeAuth, "No authentication token provided"))
			return
		}

		id, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			if s.metrics != nil {
				s.metrics.AuthFailures.Inc()
			}
			s.fail(w, r, err)
			return
		}

		AddLogField(r.Context(), "user_id", id.UserID)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
