package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/subroute/pkg/hostrouter"
	"github.com/dmitrymomot/subroute/pkg/logger"
)

// ErrNoHandlers is returned when neither subdomains nor a fallback are configured.
var ErrNoHandlers = errors.New("subroute: no subdomains or fallback configured")

// Run starts a subdomain-routing HTTP server and blocks until shutdown.
//
// Example:
//
//	err := subroute.Run(
//	    subroute.Subdomain("api", apiRouter),
//	    subroute.Fallback(websiteRouter),
//	    subroute.Address(":8080"),
//	    subroute.Logger(slog),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	handler, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// Handler builds the subdomain dispatcher without starting a server.
// Server-only options (address, hooks, timeouts) are ignored.
func Handler(opts ...RunOption) (http.Handler, error) {
	return buildHandler(buildRunConfig(opts...))
}

// buildHandler freezes the configured subdomains into a routing table and
// wraps the dispatcher with the configured middleware.
func buildHandler(cfg *runConfig) (http.Handler, error) {
	if len(cfg.subdomains) == 0 && cfg.fallback == nil {
		return nil, ErrNoHandlers
	}

	b := hostrouter.NewBuilder().
		Strict(cfg.strict).
		KnownHosts(cfg.knownHosts...)
	for key, h := range cfg.subdomains {
		b.Register(key, h)
	}
	table := b.Build()

	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}

	var handler http.Handler = hostrouter.New(table, cfg.fallback, hostrouter.WithLogger(log))
	for i := len(cfg.middlewares) - 1; i >= 0; i-- {
		handler = cfg.middlewares[i](handler)
	}

	log.Info("routing table ready",
		"subdomains", table.Keys(),
		"known_hosts", table.KnownHosts(),
		"strict", table.Strict(),
	)
	return handler, nil
}
