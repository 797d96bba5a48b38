// Package middlewares provides net/http middleware for subdomain apps.
//
// Every middleware has the func(http.Handler) http.Handler shape, so it plugs
// into chi's Use, into subroute.Middleware, or wraps any handler directly.
//
// # Request ID
//
// RequestID reuses an incoming X-Request-ID (or X-Correlation-ID) header or
// generates a UUID, stores it in the request context and echoes it back.
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID())
//
// Use RequestIDExtractor with the logger package to add request_id to all logs:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover catches panics in downstream handlers, logs them with a stack trace
// and answers 500 when nothing has been written yet.
//
//	r.Use(middlewares.Recover(log))
//
// # Access Log
//
// AccessLog writes one structured entry per request with the host, status,
// size and duration.
//
//	r.Use(middlewares.AccessLog(log))
package middlewares
