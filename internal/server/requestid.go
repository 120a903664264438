package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDMiddleware stamps each request with a unique correlation id.
// The id is stored in the context and mirrored as the X-Request-Id
// response header so clients can correlate logs.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
