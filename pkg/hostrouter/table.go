package hostrouter

import (
	"maps"
	"net/http"
	"slices"
)

// Outcome is the result of a dispatch decision.
type Outcome int

const (
	// OutcomeFallback sends the request to the fallback handler.
	OutcomeFallback Outcome = iota
	// OutcomeDispatched sends the request to the handler registered for its subdomain.
	OutcomeDispatched
	// OutcomeRejected answers the request with 404 and an empty body.
	OutcomeRejected
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeRejected:
		return "rejected"
	default:
		return "fallback"
	}
}

// Decision describes how a host is routed.
type Decision struct {
	Handler      http.Handler // set only for OutcomeDispatched
	Host         string
	Subdomain    string
	Outcome      Outcome
	HasHost      bool
	HasSubdomain bool
}

// Table is a frozen routing configuration built by a Builder.
// It has no mutating methods and is safe for concurrent use.
type Table struct {
	routes     map[string]http.Handler
	knownHosts []string
	strict     bool
}

// Lookup returns the handler registered for the exact subdomain key.
func (t *Table) Lookup(subdomain string) (http.Handler, bool) {
	h, ok := t.routes[subdomain]
	return h, ok
}

// Strict reports whether unmatched subdomains are rejected.
func (t *Table) Strict() bool {
	return t.strict
}

// KnownHosts returns a copy of the known host suffixes in match order.
func (t *Table) KnownHosts() []string {
	return slices.Clone(t.knownHosts)
}

// Keys returns the registered subdomain keys, sorted.
func (t *Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.routes))
}

// Len returns the number of registered subdomains.
func (t *Table) Len() int {
	return len(t.routes)
}

// Resolve decides how a port-less host is routed.
// hasHost is false when the request carried no usable Host header.
func (t *Table) Resolve(host string, hasHost bool) Decision {
	d := Decision{Host: host, HasHost: hasHost, Outcome: OutcomeFallback}
	if !hasHost {
		return d
	}

	sub, ok := Extract(host, t.knownHosts)
	if !ok {
		return d
	}
	d.Subdomain, d.HasSubdomain = sub, true

	if h, found := t.routes[sub]; found {
		d.Outcome = OutcomeDispatched
		d.Handler = h
		return d
	}
	if t.strict {
		d.Outcome = OutcomeRejected
	}
	return d
}
