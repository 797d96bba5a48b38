package subroute

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/subroute/internal"
	"github.com/dmitrymomot/subroute/pkg/hostrouter"
	"github.com/dmitrymomot/subroute/pkg/logger"
)

// Type aliases - public API
type (
	// RunOption configures the subdomain server.
	RunOption = internal.RunOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// ErrNoHandlers is returned by Run and Handler when neither subdomains nor a
// fallback are configured.
var ErrNoHandlers = internal.ErrNoHandlers

// Run starts a subdomain-routing HTTP server and blocks until shutdown.
// It handles SIGINT and SIGTERM for graceful shutdown.
//
// Example:
//
//	err := subroute.Run(
//	    subroute.Subdomain("api", apiRouter),
//	    subroute.Subdomain("sub.api", nestedRouter),
//	    subroute.Fallback(websiteRouter),
//	    subroute.Strict(true),
//	    subroute.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	return internal.Run(opts...)
}

// Handler builds the subdomain dispatcher without starting a server.
// Server-only options (address, hooks, timeouts) are ignored.
func Handler(opts ...RunOption) (http.Handler, error) {
	return internal.Handler(opts...)
}

// Subdomain routes requests whose extracted subdomain equals key to h.
// Keys are matched case-sensitively; registering a key twice keeps the last handler.
func Subdomain(key string, h http.Handler) RunOption {
	return internal.Subdomain(key, h)
}

// Fallback sets the handler for requests no subdomain route claims.
func Fallback(h http.Handler) RunOption {
	return internal.Fallback(h)
}

// Strict rejects requests whose subdomain has no route with an empty 404.
// Requests without a subdomain still go to the fallback.
func Strict(enabled bool) RunOption {
	return internal.Strict(enabled)
}

// KnownHosts lists base hosts tried in order before generic extraction.
func KnownHosts(hosts ...string) RunOption {
	return internal.KnownHosts(hosts...)
}

// Middleware wraps the dispatcher. The first middleware is the outermost.
func Middleware(mw ...func(http.Handler) http.Handler) RunOption {
	return internal.Middleware(mw...)
}

// Address sets the listen address (default ":8080").
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the logger for server lifecycle and routing events.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout (default 30s).
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run before the server accepts connections.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a function run after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Extract returns the subdomain of host, trying knownHosts first.
func Extract(host string, knownHosts ...string) (string, bool) {
	return hostrouter.Extract(host, knownHosts)
}
