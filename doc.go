// Package subroute dispatches HTTP requests to handlers by subdomain.
//
// The subdomain is derived from the Host header. Ports are dropped, base hosts
// given with [KnownHosts] are tried first, and otherwise the last label (after
// a trailing well-known TLD such as "com" or "localhost" is removed) is
// treated as the base domain. IPv4 addresses have their dots replaced with
// underscores so they never split into labels.
//
//	api.example.com         -> "api"
//	sub.api.localhost:8080  -> "sub.api"
//	127.0.0.1               -> "127_0_0_1"
//	example.com             -> no subdomain
//
// # Quick Start
//
//	api := chi.NewRouter()
//	api.Get("/", listThings)
//
//	err := subroute.Run(
//	    subroute.Subdomain("api", api),
//	    subroute.Fallback(website),
//	    subroute.Address(":8080"),
//	    subroute.Logger(logger.New()),
//	)
//
// # Dispatch
//
// A request goes to the handler registered for its subdomain. When no handler
// is registered it goes to the fallback, unless [Strict] is enabled, in which
// case it receives an empty 404 response. Requests without a Host header or
// without a subdomain always use the fallback.
//
// Use [Handler] to obtain the dispatcher as an http.Handler when the server is
// managed elsewhere, or the lower-level [github.com/dmitrymomot/subroute/pkg/hostrouter]
// package to build routing tables directly.
package subroute
