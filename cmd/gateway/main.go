package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vitalhq/vital-gateway/internal/config"
	"github.com/vitalhq/vital-gateway/internal/handlers"
	"github.com/vitalhq/vital-gateway/internal/identity"
	"github.com/vitalhq/vital-gateway/internal/metrics"
	"github.com/vitalhq/vital-gateway/internal/ratelimit"
	"github.com/vitalhq/vital-gateway/internal/server"
	"github.com/vitalhq/vital-gateway/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("vital-gateway", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	limiter, err := newLimiter(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	users, err := newUserStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize user store: %v", err)
	}

	signingKey := cfg.Auth.SigningKey
	if signingKey == "" {
		// Development fallback only; config.Load rejects this in production.
		signingKey = "vital-dev-signing-key"
		logger.Warn("auth.signing_key not set, using development key")
	}
	tokens := identity.NewTokenService(signingKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	identitySvc := identity.NewService(users, tokens)

	m := metrics.New()

	srv := server.New(cfg, logger, server.Options{
		Limiter:  limiter,
		Verifier: tokens,
		Metrics:  m,
	})
	srv.Register(handlers.New(identitySvc, cfg.Server.Environment).Routes())
	srv.Router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("gateway started",
		slog.Int("port", cfg.Server.Port),
		slog.String("environment", cfg.Server.Environment),
		slog.String("ratelimit_store", cfg.RateLimit.Store),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("gateway shutdown complete")
}

// newLogger mirrors the environment split: human-readable text in
// development, JSON in production.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newLimiter(cfg *config.Config) (ratelimit.Store, error) {
	switch cfg.RateLimit.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.Redis.Addr,
			Password: cfg.RateLimit.Redis.Password,
			DB:       cfg.RateLimit.Redis.DB,
		})
		return ratelimit.NewRedisStore(client, cfg.RateLimit.Max, cfg.RateLimit.Window), nil
	default:
		return ratelimit.NewMemoryStore(cfg.RateLimit.Max, cfg.RateLimit.Window), nil
	}
}

func newUserStore(cfg *config.Config) (identity.UserStore, error) {
	switch cfg.Storage.Type {
	case "memory":
		return identity.NewMemoryUserStore(), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLite.Path), 0o750); err != nil {
			return nil, err
		}
		return identity.NewSQLiteUserStore(cfg.Storage.SQLite.Path)
	}
}
