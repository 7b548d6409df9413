package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWith(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	// Point at a file that does not exist unless the test wrote one.
	if !containsEnvFileFlag(args) {
		args = append(args, "-env-file", filepath.Join(t.TempDir(), "missing.env"))
	}
	return Load(fs, args)
}

func containsEnvFileFlag(args []string) bool {
	for _, a := range args {
		if a == "-env-file" {
			return true
		}
	}
	return false
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(t)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30, cfg.Server.RecapRatePerMinute)
	assert.Equal(t, 10, cfg.Server.RecapBurst)
	assert.Equal(t, DefaultBaseURL, cfg.Upstream.BaseURL)
	assert.Equal(t, DefaultPageSize, cfg.Upstream.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Upstream.PageDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.Upstream.Stagger)
	assert.Equal(t, 6, cfg.Upstream.Workers)
	assert.Equal(t, 15*time.Second, cfg.Upstream.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Cache.RecapTTL)
	assert.Equal(t, 256, cfg.Cache.RecapMaxEntries)
	assert.Equal(t, 24*time.Hour, cfg.Cache.GenreTTL)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("UPSTREAM_PAGE_SIZE", "50")
	t.Setenv("UPSTREAM_ENRICH_WORKERS", "3")

	cfg, err := loadWith(t, "-page-size", "20")
	require.NoError(t, err)

	// Flag beats env, env beats default.
	assert.Equal(t, 20, cfg.Upstream.PageSize)
	assert.Equal(t, 3, cfg.Upstream.Workers)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# recap settings\nUPSTREAM_BASE_URL=http://localhost:9999/\nCACHE_RECAP_TTL=\"5m\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	// Variables loaded from .env leak into the process; clear them afterwards.
	t.Setenv("UPSTREAM_BASE_URL", "")
	t.Setenv("CACHE_RECAP_TTL", "")
	os.Unsetenv("UPSTREAM_BASE_URL")
	os.Unsetenv("CACHE_RECAP_TTL")

	cfg, err := loadWith(t, "-env-file", envPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.RecapTTL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := loadWith(t, "-page-delay", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_PAGE_DELAY")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Environment: "production"},
			Logger: LoggerConfig{Level: "warn"},
			Server: ServerConfig{
				Port:         "8080",
				ReadTimeout:  time.Second,
				WriteTimeout: time.Second,
				IdleTimeout:  time.Second,
			},
			Upstream: UpstreamConfig{
				BaseURL:     "https://example.test",
				UserAgent:   "test",
				PageSize:    30,
				PageDelay:   time.Millisecond,
				Stagger:     time.Millisecond,
				Workers:     2,
				RPS:         1,
				Burst:       1,
				HTTPTimeout: time.Second,
			},
			Cache: CacheConfig{RecapTTL: time.Minute, RecapMaxEntries: 1, GenreTTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown environment", mutate: func(c *Config) { c.App.Environment = "test" }, wantErr: true},
		{name: "empty environment", mutate: func(c *Config) { c.App.Environment = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logger.Level = "loud" }, wantErr: true},
		{name: "non numeric port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: true},
		{name: "bad base url", mutate: func(c *Config) { c.Upstream.BaseURL = "goodreads" }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Upstream.Workers = 0 }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.Upstream.PageSize = 0 }, wantErr: true},
		{name: "zero page delay", mutate: func(c *Config) { c.Upstream.PageDelay = 0 }, wantErr: true},
		{name: "zero stagger", mutate: func(c *Config) { c.Upstream.Stagger = 0 }, wantErr: true},
		{name: "zero cache entries", mutate: func(c *Config) { c.Cache.RecapMaxEntries = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitList(" https://a.test, ,https://b.test "))
	assert.Nil(t, splitList(""))
}
