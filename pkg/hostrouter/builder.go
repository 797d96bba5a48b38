package hostrouter

import (
	"maps"
	"net/http"
	"slices"
)

// Builder collects routing configuration before it is frozen into a Table.
// It is not safe for concurrent use.
type Builder struct {
	routes     map[string]http.Handler
	knownHosts []string
	strict     bool
}

// NewBuilder creates an empty builder: no routes, no known hosts, strict mode off.
func NewBuilder() *Builder {
	return &Builder{routes: make(map[string]http.Handler)}
}

// Register maps a subdomain key to a handler.
// Registering the same key again replaces the previous handler.
// Nil handlers are ignored.
func (b *Builder) Register(subdomain string, h http.Handler) *Builder {
	if h != nil {
		b.routes[subdomain] = h
	}
	return b
}

// Strict enables or disables strict mode.
// In strict mode a subdomain without a registered handler is answered with 404
// instead of being passed to the fallback handler.
func (b *Builder) Strict(enabled bool) *Builder {
	b.strict = enabled
	return b
}

// KnownHosts sets the list of known host suffixes, replacing any previous list.
// Suffixes are matched in the given order.
func (b *Builder) KnownHosts(hosts ...string) *Builder {
	b.knownHosts = slices.Clone(hosts)
	return b
}

// Build freezes the current configuration into an immutable Table.
// The builder can keep being used; later changes do not affect the returned table.
func (b *Builder) Build() *Table {
	return &Table{
		routes:     maps.Clone(b.routes),
		knownHosts: slices.Clone(b.knownHosts),
		strict:     b.strict,
	}
}
