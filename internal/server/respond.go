package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/vitalhq/vital-gateway/internal/apperr"
	"github.com/vitalhq/vital-gateway/internal/envelope"
)

// Handler is the gateway's handler contract: produce a response or return
// an error. Returned errors bubble to the normalizer in wrap; handlers
// never write failure envelopes themselves.
type Handler func(w http.ResponseWriter, r *http.Request) error

// wrap adapts a Handler onto net/http and is, together with fail, the
// single point where errors become wire envelopes.
func (s *Server) wrap(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		// A handler that overran its deadline surfaces as a timeout, not
		// as whatever secondary error the cancellation caused.
		if errors.Is(err, context.DeadlineExceeded) || r.Context().Err() == context.DeadlineExceeded {
			err = apperr.Wrap(apperr.CodeTimeout, "Request timed out", err)
		}
		s.fail(w, r, err)
	}
}

// fail renders err as a failure envelope. Every terminating stage routes
// through here so clients always receive a well-formed envelope.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	AddError(r.Context(), err)

	status := apperr.StatusOf(err)
	errMsg := apperr.MessageOf(err)

	var message string
	if s.dev {
		// Raw diagnostics only in development; production clients get the
		// classified message alone.
		message = err.Error()
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	if apperr.CodeOf(err) == apperr.CodeInternal && !s.dev {
		errMsg = "Internal Server Error"
		message = ""
	}

	envelope.Write(w, status, envelope.Fail(errMsg, message))
}

// notFound is the terminal fallback for unmatched routes. Method
// mismatches on known paths render the same way; the route table is the
// only dispatch authority.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, apperr.Newf(apperr.CodeNotFound, "Route %s %s not found", r.Method, r.URL.Path))
}

// recoverMiddleware converts panics into internal errors so no request
// escapes the normalizer. The stack is kept for logs and, in development,
// for the diagnostic message.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := apperr.Wrap(apperr.CodeInternal, "Internal Server Error",
					fmt.Errorf("panic: %v\n%s", rec, debug.Stack()))
				s.fail(w, r, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
