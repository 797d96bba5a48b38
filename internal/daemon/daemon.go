// Package daemon assembles the subrouted server from its configuration.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/subroute"
	"github.com/dmitrymomot/subroute/internal/config"
	"github.com/dmitrymomot/subroute/internal/upstream"
	"github.com/dmitrymomot/subroute/middlewares"
	"github.com/dmitrymomot/subroute/pkg/health"
	"github.com/dmitrymomot/subroute/pkg/hostrouter"
	"github.com/dmitrymomot/subroute/pkg/logger"
)

// Health endpoints served by the fallback app.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"

	sentryFlushTimeout = 2 * time.Second
	targetText         = "text"
)

// ErrSentryFlush is returned by the shutdown hook when buffered events
// could not be delivered in time.
var ErrSentryFlush = errors.New("daemon: sentry flush timed out")

// Daemon holds the handlers built from a Config.
type Daemon struct {
	cfg      *config.Config
	log      *slog.Logger
	routes   map[string]http.Handler
	fallback http.Handler
	table    *hostrouter.Table
}

// New builds one chi app per configured route plus the fallback app.
// cfg must already be validated.
func New(cfg *config.Config, log *slog.Logger) (*Daemon, error) {
	if log == nil {
		log = logger.NewNope()
	}

	d := &Daemon{
		cfg:    cfg,
		log:    log,
		routes: make(map[string]http.Handler, len(cfg.Routes)),
	}

	b := hostrouter.NewBuilder().
		Strict(cfg.Strict).
		KnownHosts(cfg.KnownHosts...)

	for key, up := range cfg.Routes {
		h, err := upstream.New(up, log)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", key, err)
		}
		app := d.newApp(log.With(slog.String("route", key)))
		app.Handle("/*", h)

		d.routes[key] = app
		b.Register(key, app)
	}

	fallback, err := d.newFallback()
	if err != nil {
		return nil, err
	}
	d.fallback = fallback
	d.table = b.Build()

	return d, nil
}

func (d *Daemon) newApp(log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(log),
		middlewares.AccessLog(log),
	)
	return r
}

// newFallback serves the health endpoints and, when configured, the
// fallback upstream.
func (d *Daemon) newFallback() (http.Handler, error) {
	log := d.log.With(slog.String("route", "fallback"))
	r := d.newApp(log)

	if d.cfg.Health.Enabled {
		r.Get(LivenessPath, health.LivenessHandler())
		r.Get(ReadinessPath, health.ReadinessHandler(d.checks(),
			health.WithTimeout(d.cfg.Health.Timeout),
			health.WithLogger(log),
		))
	}

	if d.cfg.Fallback != nil {
		h, err := upstream.New(*d.cfg.Fallback, log)
		if err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
		r.Handle("/*", h)
	}
	return r, nil
}

// checks probes every proxied upstream.
func (d *Daemon) checks() health.Checks {
	client := &http.Client{Timeout: d.cfg.Health.Timeout}
	checks := health.Checks{}
	for key, up := range d.cfg.Routes {
		if up.URL != "" {
			checks["route:"+key] = health.HTTPCheck(client, up.URL)
		}
	}
	if d.cfg.Fallback != nil && d.cfg.Fallback.URL != "" {
		checks["fallback"] = health.HTTPCheck(client, d.cfg.Fallback.URL)
	}
	return checks
}

// Table returns the routing table used by Resolve.
func (d *Daemon) Table() *hostrouter.Table {
	return d.table
}

// Handler returns the subdomain dispatcher without starting a server.
func (d *Daemon) Handler() (http.Handler, error) {
	return subroute.Handler(d.Options()...)
}

// Options returns the run options for subroute.Run.
func (d *Daemon) Options() []subroute.RunOption {
	opts := []subroute.RunOption{
		subroute.Fallback(d.fallback),
		subroute.Strict(d.cfg.Strict),
		subroute.KnownHosts(d.cfg.KnownHosts...),
		subroute.Address(d.cfg.Address),
		subroute.Logger(d.log),
		subroute.ShutdownTimeout(d.cfg.ShutdownTimeout),
	}
	for key, h := range d.routes {
		opts = append(opts, subroute.Subdomain(key, h))
	}
	if d.cfg.Sentry.DSN != "" {
		opts = append(opts, subroute.ShutdownHook(flushSentry))
	}
	return opts
}

func flushSentry(ctx context.Context) error {
	timeout := sentryFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if !sentry.Flush(timeout) {
		return ErrSentryFlush
	}
	return nil
}

// Resolution is the routing decision for one host.
type Resolution struct {
	Host      string `yaml:"host"`
	Subdomain string `yaml:"subdomain,omitempty"`
	Outcome   string `yaml:"outcome"`
	Target    string `yaml:"target,omitempty"`
}

// Resolve reports how each raw Host header value would be routed.
func (d *Daemon) Resolve(hosts ...string) []Resolution {
	out := make([]Resolution, 0, len(hosts))
	for _, raw := range hosts {
		dec := d.table.Resolve(hostrouter.HostFromHeader(raw))
		res := Resolution{
			Host:      raw,
			Subdomain: dec.Subdomain,
			Outcome:   dec.Outcome.String(),
		}

		switch dec.Outcome {
		case hostrouter.OutcomeDispatched:
			res.Target = describe(d.cfg.Routes[dec.Subdomain])
		case hostrouter.OutcomeFallback:
			if d.cfg.Fallback != nil {
				res.Target = describe(*d.cfg.Fallback)
			}
		}
		out = append(out, res)
	}
	return out
}

func describe(up config.Upstream) string {
	if up.URL != "" {
		return up.URL
	}
	return targetText
}

// WriteYAML encodes resolutions as a YAML sequence.
func WriteYAML(w io.Writer, res []Resolution) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}
