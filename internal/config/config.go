package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv          string
	Port            string
	SpannerDatabase string
	// RedisURL is optional; the result cache is disabled without it.
	RedisURL       string
	ResultCacheTTL time.Duration
	LogFormat      string
	LogLevel       string
	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string
	// DefaultAccompanyingPriceLists ranks the "default" accompanying price.
	DefaultAccompanyingPriceLists []string
	ShutdownTimeout               time.Duration
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:                        valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                          valueOrDefault(k.String("HTTP_PORT"), "8080"),
		SpannerDatabase:               strings.TrimSpace(k.String("SPANNER_DATABASE")),
		RedisURL:                      strings.TrimSpace(k.String("REDIS_URL")),
		ResultCacheTTL:                parseDuration(k.String("RESULT_CACHE_TTL"), "30s"),
		LogFormat:                     valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:                      valueOrDefault(k.String("LOG_LEVEL"), "info"),
		MetricsNamespace:              valueOrDefault(k.String("METRICS_NAMESPACE"), "pricing"),
		DefaultAccompanyingPriceLists: splitAndTrim(k.String("DEFAULT_ACCOMPANYING_PRICE_LISTS")),
		ShutdownTimeout:               parseDuration(k.String("SHUTDOWN_TIMEOUT"), "15s"),
	}

	if cfg.SpannerDatabase == "" {
		return nil, errors.New("SPANNER_DATABASE is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.ResultCacheTTL > 0
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// LoadForTests allows tests to override environment variables without touching the real environment.
// An empty value unsets the variable for the duration of the load.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
