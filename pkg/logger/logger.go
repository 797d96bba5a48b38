package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrInvalidLevel is returned for log level names slog does not know.
var ErrInvalidLevel = errors.New("logger: invalid level")

// ErrInvalidFormat is returned for formats other than json and text.
var ErrInvalidFormat = errors.New("logger: invalid format")

// Config describes a logger.
type Config struct {
	Output io.Writer `mapstructure:"-"`      // defaults to os.Stdout
	Level  string    `mapstructure:"level"`  // debug, info, warn, error; defaults to info
	Format string    `mapstructure:"format"` // json or text; defaults to json
}

// New creates a JSON logger on stdout at info level.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewWithConfig creates a logger from cfg.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	h, err := newHandler(cfg)
	if err != nil {
		return nil, err
	}
	return slog.New(NewLogHandlerDecorator(h, extractors...)), nil
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level name to a slog.Level.
// An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return lvl, nil
}

func newHandler(cfg Config) (slog.Handler, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case FormatText:
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}
}
