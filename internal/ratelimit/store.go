// Package ratelimit tracks request counts per client identity over a
// fixed window and decides whether a request may proceed.
package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Default policy: 100 requests per 15 minutes per client identity.
const (
	DefaultWindow = 15 * time.Minute
	DefaultLimit  = 100
)

// Result reports the outcome of a single quota check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store is the capability behind the rate-limit stage. Allow records one
// request for key and reports whether it fits the window quota. It must be
// safe for concurrent use; concurrent requests for the same key may never
// both pass when only one should.
type Store interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// KeyFunc derives the rate-limit identity for a request. The default
// policy keys on the client network address; alternate schemes (for
// example the authenticated subject id) plug in here.
type KeyFunc func(r *http.Request) string

// ClientAddress extracts the originating client address, preferring proxy
// headers over the raw connection address.
func ClientAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First entry is the original client when multiple proxies append.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	// RemoteAddr carries a port ("127.0.0.1:1234", "[::1]:1234").
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return strings.Trim(addr[:idx], "[]")
	}
	if addr == "" {
		return "unknown"
	}
	return addr
}
