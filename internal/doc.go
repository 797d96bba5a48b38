// Package internal implements the subroute server runtime.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/subroute" instead, which re-exports the public API.
//
// # Run options
//
// [RunOption] values accumulate into a run configuration: subdomain handlers,
// the fallback, strict mode, known hosts, middleware, the listen address and
// lifecycle hooks. [Handler] freezes the routing part into a
// [github.com/dmitrymomot/subroute/pkg/hostrouter.Table]; [Run] additionally
// starts an HTTP server around it.
//
// # Lifecycle
//
// Run executes startup hooks concurrently before listening, serves until
// SIGINT, SIGTERM or cancellation of the base context, then shuts the server
// down and runs shutdown hooks within the shutdown timeout. Errors from the
// server and from every shutdown hook are joined.
package internal
