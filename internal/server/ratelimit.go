package server

import (
	"net/http"
	"strconv"

	"github.com/vitalhq/vital-gateway/internal/apperr"
	"github.com/vitalhq/vital-gateway/internal/ratelimit"
)

// rateLimitMiddleware checks the request against the client's window
// quota. Limit metadata headers are set on every checked response, not
// just rejections, so well-behaved clients can pace themselves.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := s.limitKey(r)

		res, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			// A broken limiter store must not take the gateway down with
			// it; log and admit.
			s.logger.Error("rate limit check failed", "error", err.Error(), "key", key)
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			if s.metrics != nil {
				s.metrics.RateLimitedTotal.Inc()
			}
			s.fail(w, r, apperr.New(apperr.CodeRateLimit,
				"Too many requests from this IP, please try again later."))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limitKey derives the rate-limit identity for a request using the
// configured key function, defaulting to the client network address.
func (s *Server) limitKey(r *http.Request) string {
	if s.limitKeyFunc != nil {
		return s.limitKeyFunc(r)
	}
	return ratelimit.ClientAddress(r)
}
