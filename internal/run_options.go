package internal

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

// runConfig holds runtime configuration for the server.
type runConfig struct {
	baseCtx         context.Context
	logger          *slog.Logger
	fallback        http.Handler
	subdomains      map[string]http.Handler
	address         string
	knownHosts      []string
	middlewares     []func(http.Handler) http.Handler
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
	strict          bool
}

// buildRunConfig creates a runConfig from the provided options.
func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{
		subdomains:      make(map[string]http.Handler),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return func(c *runConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Logger sets the server logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook registers a function to run before the server starts accepting
// requests. Hooks run concurrently; the first error aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// Subdomain maps a subdomain key to a handler.
// The key is matched exactly and case-sensitively against the extracted
// subdomain: "api" serves api.example.com, "v1.api" serves v1.api.example.com.
// Registering the same key twice keeps the last handler.
//
// Example:
//
//	subroute.Run(
//	    subroute.Subdomain("api", apiRouter),
//	    subroute.Subdomain("admin", adminRouter),
//	    subroute.Fallback(landingRouter),
//	)
func Subdomain(key string, h http.Handler) RunOption {
	return func(c *runConfig) {
		if h != nil {
			c.subdomains[key] = h
		}
	}
}

// Fallback sets the handler for requests that don't match any subdomain.
// Without a fallback such requests are answered with 404.
func Fallback(h http.Handler) RunOption {
	return func(c *runConfig) {
		if h != nil {
			c.fallback = h
		}
	}
}

// Strict rejects requests whose subdomain is not registered with 404
// instead of passing them to the fallback.
// Requests without a subdomain still go to the fallback.
func Strict(enabled bool) RunOption {
	return func(c *runConfig) {
		c.strict = enabled
	}
}

// KnownHosts sets apex hosts that take precedence over TLD-based extraction.
// With "example.co.uk" configured, "a.b.example.co.uk" yields the key "a.b".
// Hosts are matched in the given order. A later call replaces the list.
func KnownHosts(hosts ...string) RunOption {
	return func(c *runConfig) {
		c.knownHosts = slices.Clone(hosts)
	}
}

// Middleware wraps the subdomain dispatcher.
// Middleware is applied in the order provided; the first one is outermost.
func Middleware(mw ...func(http.Handler) http.Handler) RunOption {
	return func(c *runConfig) {
		for _, m := range mw {
			if m != nil {
				c.middlewares = append(c.middlewares, m)
			}
		}
	}
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
