// Package logging configures the zerolog loggers used by the command and the
// HTTP API.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chronos-tachyon/huffmantree/internal/config"
)

// New builds a logger writing to w at the configured level.  Pretty selects
// the human-readable console format instead of JSON lines.
func New(w io.Writer, cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Setup builds a logger writing to w and installs it as the global logger.
func Setup(w io.Writer, cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := New(w, cfg)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger, nil
}

// ParseLevel accepts zerolog level names in any case.  The empty string means
// info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}
