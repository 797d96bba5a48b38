// Package upstream turns configured upstreams into HTTP handlers.
package upstream

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/dmitrymomot/subroute/internal/config"
	"github.com/dmitrymomot/subroute/pkg/logger"
)

// New builds the handler for an upstream: a reverse proxy for URL upstreams,
// a fixed text response otherwise.
func New(cfg config.Upstream, log *slog.Logger) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNope()
	}
	if cfg.URL == "" {
		return newText(cfg), nil
	}
	return newProxy(cfg, log)
}

type proxy struct {
	target       *url.URL
	reverseProxy *httputil.ReverseProxy
	headers      map[string]string
	preserveHost bool
}

func newProxy(cfg config.Upstream, log *slog.Logger) (*proxy, error) {
	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("upstream: parse %q: %w", cfg.URL, err)
	}

	rp := httputil.NewSingleHostReverseProxy(target)
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "upstream request failed",
			slog.String("upstream", target.String()),
			slog.String("host", r.Host),
			slog.Any("error", err),
		)
		w.WriteHeader(http.StatusBadGateway)
	}

	return &proxy{
		target:       target,
		reverseProxy: rp,
		headers:      cfg.Headers,
		preserveHost: cfg.PreserveHost,
	}, nil
}

// ServeHTTP forwards the request. The original Host is kept when
// preserve_host is set; otherwise the upstream host is sent.
func (p *proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out := r.Clone(r.Context())
	for name, value := range p.headers {
		out.Header.Set(name, value)
	}
	if !p.preserveHost {
		out.Host = p.target.Host
	}
	p.reverseProxy.ServeHTTP(w, out)
}

type text struct {
	body   []byte
	status int
}

func newText(cfg config.Upstream) *text {
	status := cfg.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &text{body: []byte(cfg.Text), status: status}
}

func (t *text) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(t.status)
	_, _ = w.Write(t.body)
}
