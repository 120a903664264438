// Package config loads gateway configuration from an optional YAML file
// and VITAL_-prefixed environment variables, with environment taking
// precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Body      BodyConfig      `koanf:"body"`
	Auth      AuthConfig      `koanf:"auth"`
	Storage   StorageConfig   `koanf:"storage"`
}

type ServerConfig struct {
	Port           int           `koanf:"port"`
	Environment    string        `koanf:"environment"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

type RateLimitConfig struct {
	Window time.Duration `koanf:"window"`
	Max    int           `koanf:"max"`
	Store  string        `koanf:"store"` // memory, redis
	Redis  RedisConfig   `koanf:"redis"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type BodyConfig struct {
	MaxBytes int64 `koanf:"max_bytes"`
}

type AuthConfig struct {
	SigningKey string        `koanf:"signing_key"`
	Issuer     string        `koanf:"issuer"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // sqlite, memory
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// Load reads configuration: defaults, then configPath (if it exists),
// then VITAL_ environment variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"server.port":            8080,
		"server.environment":     EnvDevelopment,
		"server.request_timeout": "30s",
		"cors.origins":           []string{"http://localhost:3000"},
		"ratelimit.window":       "15m",
		"ratelimit.max":          100,
		"ratelimit.store":        "memory",
		"ratelimit.redis.addr":   "localhost:6379",
		"body.max_bytes":         10 << 20, // 10 MB
		"auth.signing_key":       "",
		"auth.issuer":            "vital-gateway",
		"auth.token_ttl":         "24h",
		"storage.type":           "sqlite",
		"storage.sqlite.path":    "./data/gateway.db",
	}
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// Double underscore separates nesting levels so keys like signing_key
	// survive: VITAL_SERVER__PORT=9090 overrides server.port,
	// VITAL_AUTH__SIGNING_KEY sets auth.signing_key. CORS origins are
	// comma-separated: VITAL_CORS__ORIGINS=https://a.example,https://b.example
	if err := k.Load(env.Provider("VITAL_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "VITAL_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if raw := k.String("cors.origins"); raw != "" && strings.Contains(raw, ",") {
		cfg.CORS.Origins = splitAndTrim(raw)
	}

	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return nil, fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if cfg.Server.Environment == EnvProduction && cfg.Auth.SigningKey == "" {
		return nil, fmt.Errorf("auth.signing_key is required in production")
	}

	return &cfg, nil
}

// IsDevelopment reports whether diagnostic verbosity is enabled.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
