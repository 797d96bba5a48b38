package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subroute/pkg/hostrouter"
)

func TestGetHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		host     string
		expected string
		ok       bool
	}{
		{name: "simple domain", host: "example.com", expected: "example.com", ok: true},
		{name: "domain with port", host: "example.com:8080", expected: "example.com", ok: true},
		{name: "case preserved", host: "API.Example.COM", expected: "API.Example.COM", ok: true},
		{name: "ipv4 with port", host: "192.168.1.1:8080", expected: "192.168.1.1", ok: true},
		{name: "localhost with port", host: "localhost:3000", expected: "localhost", ok: true},
		{name: "empty host", host: ""},
		{name: "control character", host: "exa\x01mple.com"},
		{name: "non-ascii", host: "bücher.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host

			host, ok := hostrouter.GetHost(req)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, host)
		})
	}
}

func TestGetSubdomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		host       string
		knownHosts []string
		expected   string
		ok         bool
	}{
		{name: "single subdomain", host: "foo.example.com", expected: "foo", ok: true},
		{name: "with port", host: "foo.example.com:8080", expected: "foo", ok: true},
		{name: "apex", host: "example.com"},
		{name: "empty host", host: ""},
		{
			name:       "known host",
			host:       "tenant1.app.internal:8080",
			knownHosts: []string{"app.internal"},
			expected:   "tenant1",
			ok:         true,
		},
		{
			name:       "deep known host",
			host:       "bar.foo.myapp.co.uk",
			knownHosts: []string{"myapp.co.uk"},
			expected:   "bar.foo",
			ok:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host

			sub, ok := hostrouter.GetSubdomain(req, tt.knownHosts...)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, sub)
		})
	}
}

func TestHostFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{raw: "api.example.com:443", expected: "api.example.com", ok: true},
		{raw: "with\ttab.example.com", expected: "with\ttab.example.com", ok: true},
		{raw: ""},
		{raw: "api.exa\x7fmple.com"},
		{raw: "api.\x00example.com"},
		{raw: "ñ.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			host, ok := hostrouter.HostFromHeader(tt.raw)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, host)
		})
	}
}
