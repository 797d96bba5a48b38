package hostrouter

import (
	"io"
	"log/slog"
	"net/http"
)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used to trace dispatch decisions at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// Router routes requests based on the subdomain of the Host header.
type Router struct {
	table    *Table
	fallback http.Handler
	logger   *slog.Logger
}

// New creates a subdomain router over a frozen table.
// The fallback handler serves requests that are neither dispatched nor rejected.
// A nil fallback answers with 404, a nil table routes everything to the fallback.
func New(table *Table, fallback http.Handler, opts ...Option) *Router {
	if table == nil {
		table = NewBuilder().Build()
	}
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	r := &Router{
		table:    table,
		fallback: fallback,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Middleware returns a middleware that routes by subdomain and uses the
// wrapped handler as the fallback.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(hostrouter.Middleware(table))
func Middleware(table *Table, opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return New(table, next, opts...)
	}
}

// Table returns the routing table.
func (rt *Router) Table() *Table {
	return rt.table
}

// Decide returns the routing decision for a request without serving it.
func (rt *Router) Decide(req *http.Request) Decision {
	host, ok := GetHost(req)
	return rt.table.Resolve(host, ok)
}

// ServeHTTP passes the request, unmodified, to exactly one handler,
// or answers 404 with an empty body when strict mode rejects it.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	d := rt.Decide(req)

	rt.logger.DebugContext(req.Context(), "subdomain routing",
		slog.String("host", d.Host),
		slog.String("subdomain", d.Subdomain),
		slog.String("outcome", d.Outcome.String()),
	)

	switch d.Outcome {
	case OutcomeDispatched:
		d.Handler.ServeHTTP(w, req)
	case OutcomeRejected:
		w.WriteHeader(http.StatusNotFound)
	default:
		rt.fallback.ServeHTTP(w, req)
	}
}
