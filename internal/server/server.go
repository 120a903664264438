// Package server implements the gateway's request pipeline: an ordered
// chain of cross-cutting stages (security headers, CORS, rate limiting,
// body decoding, request identification, logging, metrics, timeouts,
// panic recovery, per-route authentication) in front of a static route
// table. Domain handlers are plugged in from outside; the pipeline never
// inspects their business logic.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vitalhq/vital-gateway/internal/config"
	"github.com/vitalhq/vital-gateway/internal/identity"
	"github.com/vitalhq/vital-gateway/internal/metrics"
	"github.com/vitalhq/vital-gateway/internal/ratelimit"
)

// Route is one entry of the static dispatch table, built once at startup
// and immutable afterwards.
type Route struct {
	Method      string
	Pattern     string
	Handler     Handler
	RequireAuth bool
}

// Options carries the pipeline's external collaborators.
type Options struct {
	Limiter  ratelimit.Store
	LimitKey ratelimit.KeyFunc // nil means key on client address
	Verifier identity.Verifier
	Metrics  *metrics.Metrics
}

type Server struct {
	Router *chi.Mux
	Port   int

	logger       *slog.Logger
	dev          bool
	limiter      ratelimit.Store
	limitKeyFunc ratelimit.KeyFunc
	verifier     identity.Verifier
	metrics      *metrics.Metrics
	maxBodyBytes int64

	httpServer *http.Server
}

// New assembles the pipeline. Stage order is load-bearing: hardening
// headers and CORS decisions apply to every response including early
// terminations, rate limiting runs before any body work, and the
// correlation id is stamped before logging so both lines carry it.
func New(cfg *config.Config, logger *slog.Logger, opts Options) *Server {
	s := &Server{
		Router:       chi.NewRouter(),
		Port:         cfg.Server.Port,
		logger:       logger,
		dev:          cfg.IsDevelopment(),
		limiter:      opts.Limiter,
		limitKeyFunc: opts.LimitKey,
		verifier:     opts.Verifier,
		metrics:      opts.Metrics,
		maxBodyBytes: cfg.Body.MaxBytes,
	}

	r := s.Router
	r.Use(SecurityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	if s.limiter != nil {
		r.Use(s.rateLimitMiddleware)
	}
	r.Use(s.decodeBodyMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	if s.metrics != nil {
		r.Use(s.metricsMiddleware)
	}
	r.Use(TimeoutMiddleware(cfg.Server.RequestTimeout))
	r.Use(s.recoverMiddleware)

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "vital-gateway")
	})

	r.NotFound(s.notFound)
	// A method mismatch on a known path is still an unmatched route.
	r.MethodNotAllowed(s.notFound)

	return s
}

// Register mounts the route table. Auth-required routes share one guard
// group; Register must only be called before Start.
func (s *Server) Register(routes []Route) {
	var protected []Route
	for _, rt := range routes {
		if rt.RequireAuth {
			protected = append(protected, rt)
			continue
		}
		s.Router.Method(rt.Method, rt.Pattern, s.wrap(rt.Handler))
	}

	if len(protected) == 0 {
		return
	}
	s.Router.Group(func(g chi.Router) {
		g.Use(s.requireAuth)
		for _, rt := range protected {
			g.Method(rt.Method, rt.Pattern, s.wrap(rt.Handler))
		}
	})
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: s.Router,
	}
	s.logger.Info("starting server", slog.Int("port", s.Port))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
