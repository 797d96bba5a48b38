package subroute_test

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subroute"
)

func app(msg string) http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(msg))
	})
	return r
}

func newServer(t *testing.T, opts ...subroute.RunOption) *httptest.Server {
	t.Helper()
	h, err := subroute.Handler(opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// get sends a request to srv with the Host header set to sub + the server IP and port.
func get(t *testing.T, srv *httptest.Server, sub string) (int, string) {
	t.Helper()

	_, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)

	host := "127.0.0.1:" + port
	if sub != "" {
		host = sub + "." + host
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Host = host

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSubdomainRouting(t *testing.T) {
	t.Parallel()

	srv := newServer(t,
		subroute.Subdomain("api", app("Hello from API!")),
		subroute.Subdomain("admin", app("Hello from Admin!")),
		subroute.Fallback(app("Hello from Main App!")),
	)

	tests := []struct {
		sub  string
		want string
	}{
		{sub: "", want: "Hello from Main App!"},
		{sub: "api", want: "Hello from API!"},
		{sub: "admin", want: "Hello from Admin!"},
		{sub: "unknown", want: "Hello from Main App!"},
	}

	for _, tt := range tests {
		t.Run("sub="+tt.sub, func(t *testing.T) {
			t.Parallel()

			status, body := get(t, srv, tt.sub)
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, tt.want, body)
		})
	}
}

func TestSubdomainRouting_Strict(t *testing.T) {
	t.Parallel()

	srv := newServer(t,
		subroute.Subdomain("api", app("Hello from API!")),
		subroute.Subdomain("admin", app("Hello from Admin!")),
		subroute.Fallback(app("Hello from Main App!")),
		subroute.Strict(true),
	)

	status, body := get(t, srv, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Hello from Main App!", body)

	status, body = get(t, srv, "api")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Hello from API!", body)

	status, body = get(t, srv, "admin")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Hello from Admin!", body)

	status, body = get(t, srv, "unknown")
	require.Equal(t, http.StatusNotFound, status)
	require.Empty(t, body)
}

func TestHandler_NoHandlers(t *testing.T) {
	t.Parallel()

	_, err := subroute.Handler(subroute.Strict(true))
	require.ErrorIs(t, err, subroute.ErrNoHandlers)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host       string
		knownHosts []string
		want       string
		ok         bool
	}{
		{host: "api.example.com", want: "api", ok: true},
		{host: "sub.api.localhost:8080", want: "sub.api", ok: true},
		{host: "api.127.0.0.1", want: "api", ok: true},
		{host: "example.com", ok: false},
		{host: "a.b.corp.internal", knownHosts: []string{"corp.internal"}, want: "a.b", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			got, ok := subroute.Extract(tt.host, tt.knownHosts...)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
