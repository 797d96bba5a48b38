package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	// MinLevel is the lowest level stored as a Sentry log; errors always create events.
	MinLevel slog.Level `mapstructure:"-"`
}

// NewWithSentry creates a logger that writes to base and to Sentry.
// If the DSN is empty or the SDK fails to initialize, only base is used.
func NewWithSentry(base Config, cfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, error) {
	local, err := newHandler(base)
	if err != nil {
		return nil, err
	}

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...)), nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, extractors...)), nil
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(fanout{local, remote}, extractors...)), nil
}
