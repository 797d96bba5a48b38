// Package logger builds the structured slog loggers used by the router and daemon.
//
// Loggers write JSON or text to a writer (stdout by default), can inject
// request-scoped attributes through context extractors, and can fan errors out
// to Sentry.
//
// # Basic Usage
//
//	log, err := logger.NewWithConfig(logger.Config{Level: "debug", Format: "text"},
//	    middlewares.RequestIDExtractor(),
//	)
//
//	log.InfoContext(r.Context(), "request dispatched", slog.String("subdomain", "api"))
//	// time=... level=INFO msg="request dispatched" subdomain=api request_id=6f1c...
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every enabled log call, so values set per request are
// always fresh. Returning false skips the attribute.
//
// # Sentry
//
// NewWithSentry sends errors to Sentry as events and stores warnings as
// Sentry logs. With an empty DSN, or if the SDK fails to initialize,
// it logs to the configured writer only.
package logger
