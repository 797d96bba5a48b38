// Package config loads the subrouted daemon configuration from a YAML file,
// SUBROUTE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dmitrymomot/subroute/pkg/logger"
)

const (
	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "SUBROUTE"

	// KeyDelimiter separates nested keys. Route keys contain dots
	// ("sub.api"), so viper's default "." cannot be used.
	KeyDelimiter = "::"
)

// Errors returned by Validate.
var (
	ErrEmptyAddress     = errors.New("config: address must not be empty")
	ErrEmptyRouteKey    = errors.New("config: route key must not be empty")
	ErrInvalidUpstream  = errors.New("config: upstream needs exactly one of url or text")
	ErrInvalidURL       = errors.New("config: upstream url must be absolute http(s)")
	ErrInvalidStatus    = errors.New("config: upstream status must be a valid HTTP status")
	ErrInvalidTimeout   = errors.New("config: timeouts must be positive")
	ErrNoRoutesOrTarget = errors.New("config: at least one route or a fallback is required")
)

// Config is the daemon configuration.
type Config struct {
	Address         string              `mapstructure:"address"`
	ShutdownTimeout time.Duration       `mapstructure:"shutdown_timeout"`
	KnownHosts      []string            `mapstructure:"known_hosts"`
	Strict          bool                `mapstructure:"strict"`
	Log             logger.Config       `mapstructure:"log"`
	Sentry          logger.SentryConfig `mapstructure:"sentry"`
	Health          Health              `mapstructure:"health"`
	Fallback        *Upstream           `mapstructure:"fallback"`
	Routes          map[string]Upstream `mapstructure:"routes"`
}

// Health configures the probe endpoints served by the fallback app.
type Health struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Upstream describes what serves one subdomain: a proxied backend (URL) or
// a fixed text response (Text).
type Upstream struct {
	Headers      map[string]string `mapstructure:"headers"`
	URL          string            `mapstructure:"url"`
	Text         string            `mapstructure:"text"`
	Status       int               `mapstructure:"status"`
	PreserveHost bool              `mapstructure:"preserve_host"`
}

// NewViper returns a viper instance using KeyDelimiter.
func NewViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
}

// Key joins nested key parts with KeyDelimiter.
func Key(parts ...string) string {
	return strings.Join(parts, KeyDelimiter)
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("address", ":8080")
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("strict", false)
	v.SetDefault("known_hosts", []string{})
	v.SetDefault(Key("log", "level"), "info")
	v.SetDefault(Key("log", "format"), logger.FormatJSON)
	v.SetDefault(Key("sentry", "dsn"), "")
	v.SetDefault(Key("sentry", "environment"), "production")
	v.SetDefault(Key("health", "enabled"), true)
	v.SetDefault(Key("health", "timeout"), 5*time.Second)
}

// Load reads the configuration into a validated Config.
// v should come from NewViper. If path is empty no file is read and only
// defaults, environment and flags already bound to v apply.
//
// Viper folds map keys to lower case, so route keys are always lower case.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(KeyDelimiter, "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	// known hosts from env arrive as one comma-separated string
	cfg.KnownHosts = splitList(cfg.KnownHosts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the daemon cannot serve.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}
	if c.ShutdownTimeout <= 0 || c.Health.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("%w: %q", logger.ErrInvalidFormat, c.Log.Format)
	}
	if len(c.Routes) == 0 && c.Fallback == nil {
		return ErrNoRoutesOrTarget
	}

	for key, up := range c.Routes {
		if key == "" {
			return ErrEmptyRouteKey
		}
		if err := up.Validate(); err != nil {
			return fmt.Errorf("route %q: %w", key, err)
		}
	}
	if c.Fallback != nil {
		if err := c.Fallback.Validate(); err != nil {
			return fmt.Errorf("fallback: %w", err)
		}
	}
	return nil
}

// Validate checks that the upstream is either a valid URL or a text response.
func (u Upstream) Validate() error {
	if (u.URL == "") == (u.Text == "") {
		return ErrInvalidUpstream
	}
	if u.Status != 0 && (u.Status < 100 || u.Status > 599) {
		return ErrInvalidStatus
	}
	if u.URL == "" {
		return nil
	}

	parsed, err := url.Parse(u.URL)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, u.URL)
	}
	return nil
}

// splitList flattens comma-separated entries and drops blanks, keeping order.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
