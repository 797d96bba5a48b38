package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subroute/internal/config"
	"github.com/dmitrymomot/subroute/pkg/logger"
)

const sampleConfig = `
address: ":9090"
strict: true
known_hosts:
  - example.com
  - example.co.uk
log:
  level: debug
  format: text
routes:
  api:
    url: http://127.0.0.1:3000
    preserve_host: true
    headers:
      X-Tenant: acme
  sub.api:
    text: nested
    status: 202
fallback:
  text: home
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.NewViper(), writeConfig(t, sampleConfig))
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)
	require.True(t, cfg.Strict)
	require.Equal(t, []string{"example.com", "example.co.uk"}, cfg.KnownHosts)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, logger.FormatText, cfg.Log.Format)

	require.Len(t, cfg.Routes, 2)
	api := cfg.Routes["api"]
	require.Equal(t, "http://127.0.0.1:3000", api.URL)
	require.True(t, api.PreserveHost)
	require.Equal(t, map[string]string{"x-tenant": "acme"}, api.Headers)

	nested, ok := cfg.Routes["sub.api"]
	require.True(t, ok, "dotted route keys must stay intact")
	require.Equal(t, "nested", nested.Text)
	require.Equal(t, 202, nested.Status)

	require.NotNil(t, cfg.Fallback)
	require.Equal(t, "home", cfg.Fallback.Text)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.NewViper(), writeConfig(t, "fallback:\n  text: ok\n"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.Strict)
	require.Empty(t, cfg.KnownHosts)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, logger.FormatJSON, cfg.Log.Format)
	require.Equal(t, "production", cfg.Sentry.Environment)
	require.Empty(t, cfg.Sentry.DSN)
	require.True(t, cfg.Health.Enabled)
	require.Equal(t, 5*time.Second, cfg.Health.Timeout)
	require.Empty(t, cfg.Routes)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SUBROUTE_ADDRESS", "127.0.0.1:7000")
	t.Setenv("SUBROUTE_STRICT", "true")
	t.Setenv("SUBROUTE_KNOWN_HOSTS", "example.com, example.org")
	t.Setenv("SUBROUTE_LOG_LEVEL", "warn")
	t.Setenv("SUBROUTE_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := config.Load(config.NewViper(), writeConfig(t, "fallback:\n  text: ok\n"))
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:7000", cfg.Address)
	require.True(t, cfg.Strict)
	require.Equal(t, []string{"example.com", "example.org"}, cfg.KnownHosts)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.NewViper(), filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("nothing to serve", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.NewViper(), writeConfig(t, "strict: true\n"))
		require.ErrorIs(t, err, config.ErrNoRoutesOrTarget)
	})

	t.Run("invalid route", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.NewViper(), writeConfig(t, "routes:\n  api:\n    url: http://x\n    text: both\n"))
		require.ErrorIs(t, err, config.ErrInvalidUpstream)
		require.Contains(t, err.Error(), `"api"`)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.NewViper(), writeConfig(t, "log:\n  level: loud\nfallback:\n  text: ok\n"))
		require.ErrorIs(t, err, logger.ErrInvalidLevel)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() config.Config {
		return config.Config{
			Address:         ":8080",
			ShutdownTimeout: time.Second,
			Health:          config.Health{Timeout: time.Second},
			Routes:          map[string]config.Upstream{"api": {Text: "ok"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "empty address", mutate: func(c *config.Config) { c.Address = "" }, want: config.ErrEmptyAddress},
		{name: "zero shutdown timeout", mutate: func(c *config.Config) { c.ShutdownTimeout = 0 }, want: config.ErrInvalidTimeout},
		{name: "zero health timeout", mutate: func(c *config.Config) { c.Health.Timeout = 0 }, want: config.ErrInvalidTimeout},
		{name: "empty route key", mutate: func(c *config.Config) { c.Routes[""] = config.Upstream{Text: "x"} }, want: config.ErrEmptyRouteKey},
		{name: "no routes or fallback", mutate: func(c *config.Config) { c.Routes = nil }, want: config.ErrNoRoutesOrTarget},
		{name: "fallback only", mutate: func(c *config.Config) {
			c.Routes = nil
			c.Fallback = &config.Upstream{URL: "https://example.com"}
		}},
		{name: "bad log format", mutate: func(c *config.Config) { c.Log.Format = "xml" }, want: logger.ErrInvalidFormat},
		{name: "bad fallback", mutate: func(c *config.Config) { c.Fallback = &config.Upstream{} }, want: config.ErrInvalidUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpstream_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		up   config.Upstream
		want error
	}{
		{name: "text", up: config.Upstream{Text: "hi"}},
		{name: "text with status", up: config.Upstream{Text: "gone", Status: 410}},
		{name: "url", up: config.Upstream{URL: "http://127.0.0.1:3000/base"}},
		{name: "neither", up: config.Upstream{}, want: config.ErrInvalidUpstream},
		{name: "both", up: config.Upstream{URL: "http://a", Text: "b"}, want: config.ErrInvalidUpstream},
		{name: "status too low", up: config.Upstream{Text: "x", Status: 42}, want: config.ErrInvalidStatus},
		{name: "status too high", up: config.Upstream{Text: "x", Status: 600}, want: config.ErrInvalidStatus},
		{name: "relative url", up: config.Upstream{URL: "/local"}, want: config.ErrInvalidURL},
		{name: "unsupported scheme", up: config.Upstream{URL: "ftp://files"}, want: config.ErrInvalidURL},
		{name: "unparsable url", up: config.Upstream{URL: "http://[::1"}, want: config.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.up.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "log::level", config.Key("log", "level"))
	require.Equal(t, "address", config.Key("address"))
}
