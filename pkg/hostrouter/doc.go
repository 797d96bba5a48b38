// Package hostrouter provides subdomain-based HTTP routing.
//
// It reads the Host header of an incoming request, extracts an optional
// subdomain key and dispatches the request to the handler registered for that
// key. Requests without a matching key are served by a fallback handler, or
// rejected with 404 when strict mode is enabled.
//
// # Subdomain Extraction
//
// The port is stripped from the host (everything from the first colon). Then:
//
//   - Known hosts: if the host ends with ".<known>" for a configured known host,
//     everything before that dot is the subdomain. Known hosts are checked in
//     registration order and the first match wins.
//   - Generic: IPv4 literals are collapsed into a single label, the host is
//     split on dots, a trailing well-known TLD label is dropped, and all labels
//     but the last remaining one form the subdomain.
//
// Examples without known hosts:
//
//	"example.com"         -> no subdomain
//	"api.example.com"     -> "api"
//	"sub.api.example.com" -> "sub.api"
//	"api.localhost"       -> "api"
//	"127.0.0.1"           -> no subdomain
//	"api.127.0.0.1"       -> "api"
//
// Host and key comparisons are case-sensitive.
//
// # Usage
//
//	table := hostrouter.NewBuilder().
//	    Register("api", apiHandler).
//	    Register("admin", adminHandler).
//	    KnownHosts("myapp.co.uk").
//	    Strict(true).
//	    Build()
//
//	http.ListenAndServe(":8080", hostrouter.New(table, mainHandler))
//
// Or wrap an existing handler, which then serves as the fallback:
//
//	handler := hostrouter.Middleware(table)(mainHandler)
//
// # Dispatch
//
// Per request exactly one of three outcomes is chosen:
//
//   - dispatched: the subdomain matches a registered key
//   - rejected: strict mode and the extracted subdomain is not registered
//   - fallback: no Host header, no subdomain, or non-strict miss
//
// A Table is immutable once built and safe for concurrent use.
package hostrouter
