// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/listenupapp/shelfwrapped/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `env:"ENV" validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" validate:"required,numeric"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout    time.Duration `env:"SERVER_IDLE_TIMEOUT" validate:"gt=0"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"`

	// Per client IP limit on recap requests; 0 disables it.
	RecapRatePerMinute int `env:"SERVER_RECAP_RATE_PER_MINUTE" validate:"min=0"`
	RecapBurst         int `env:"SERVER_RECAP_BURST" validate:"min=0"`
}

// UpstreamConfig controls how the reading-tracker site is crawled.
type UpstreamConfig struct {
	BaseURL     string        `env:"UPSTREAM_BASE_URL" validate:"required,http_url"`
	UserAgent   string        `env:"UPSTREAM_USER_AGENT" validate:"required"`
	PageSize    int           `env:"UPSTREAM_PAGE_SIZE" validate:"min=1,max=200"`
	PageDelay   time.Duration `env:"UPSTREAM_PAGE_DELAY" validate:"gt=0"`
	Stagger     time.Duration `env:"UPSTREAM_ENRICH_STAGGER" validate:"gt=0"`
	Workers     int           `env:"UPSTREAM_ENRICH_WORKERS" validate:"min=1,max=32"`
	RPS         float64       `env:"UPSTREAM_RPS" validate:"gt=0"`
	Burst       int           `env:"UPSTREAM_BURST" validate:"min=1"`
	HTTPTimeout time.Duration `env:"UPSTREAM_HTTP_TIMEOUT" validate:"gt=0"`
}

// CacheConfig holds the transient cache settings.
type CacheConfig struct {
	RecapTTL        time.Duration `env:"CACHE_RECAP_TTL" validate:"gt=0"`
	RecapMaxEntries int           `env:"CACHE_RECAP_MAX_ENTRIES" validate:"min=1"`
	GenreTTL        time.Duration `env:"CACHE_GENRE_TTL" validate:"gt=0"`
}

// Defaults used when neither a flag, an env var nor .env provide a value.
const (
	DefaultBaseURL   = "https://www.goodreads.com"
	DefaultUserAgent = "ShelfWrapped/1.0"
	DefaultPageSize  = 30
)

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load is LoadConfig against an explicit flag set and argument list.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	port := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 90s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	origins := fs.String("cors-origins", "", "Comma separated list of allowed CORS origins (default: *)")

	baseURL := fs.String("upstream-url", "", "Reading tracker base URL")
	pageSize := fs.String("page-size", "", "Items per feed page (default: 30)")
	pageDelay := fs.String("page-delay", "", "Delay between feed pages (default: 250ms)")
	stagger := fs.String("enrich-stagger", "", "Per-book stagger for genre lookups (default: 100ms)")
	workers := fs.String("enrich-workers", "", "Concurrent genre lookups (default: 6)")

	recapTTL := fs.String("recap-ttl", "", "How long a finished recap is cached (default: 30m)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine; godotenv never overrides variables that are already set.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*port, "SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getConfigValue(*origins, "CORS_ALLOWED_ORIGINS", "*")),

			RecapRatePerMinute: getIntConfigValue("", "SERVER_RECAP_RATE_PER_MINUTE", 30),
			RecapBurst:         getIntConfigValue("", "SERVER_RECAP_BURST", 10),
		},
		Upstream: UpstreamConfig{
			BaseURL:   strings.TrimRight(getConfigValue(*baseURL, "UPSTREAM_BASE_URL", DefaultBaseURL), "/"),
			UserAgent: getConfigValue("", "UPSTREAM_USER_AGENT", DefaultUserAgent),
			PageSize:  getIntConfigValue(*pageSize, "UPSTREAM_PAGE_SIZE", DefaultPageSize),
			Workers:   getIntConfigValue(*workers, "UPSTREAM_ENRICH_WORKERS", 6),
			RPS:       getFloatConfigValue("", "UPSTREAM_RPS", 4),
			Burst:     getIntConfigValue("", "UPSTREAM_BURST", 4),
		},
		Cache: CacheConfig{
			RecapMaxEntries: getIntConfigValue("", "CACHE_RECAP_MAX_ENTRIES", 256),
		},
	}

	durations := []struct {
		dst      *time.Duration
		flag     string
		envKey   string
		fallback string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		// A cold recap crawls every page plus one detail page per book.
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "90s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.Upstream.PageDelay, *pageDelay, "UPSTREAM_PAGE_DELAY", "250ms"},
		{&cfg.Upstream.Stagger, *stagger, "UPSTREAM_ENRICH_STAGGER", "100ms"},
		{&cfg.Upstream.HTTPTimeout, "", "UPSTREAM_HTTP_TIMEOUT", "15s"},
		{&cfg.Cache.RecapTTL, *recapTTL, "CACHE_RECAP_TTL", "30m"},
		{&cfg.Cache.GenreTTL, "", "CACHE_GENRE_TTL", "24h"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.envKey, d.fallback)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}
	return validation.New().Validate(c)
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
