package observability

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds a logger writing to w. format "json" emits one JSON object
// per line; anything else uses the human console writer. An unknown level
// falls back to info.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Setup builds a logger with NewLogger and installs it as the global
// zerolog logger.
func Setup(w io.Writer, level, format string) zerolog.Logger {
	logger := NewLogger(w, level, format)
	log.Logger = logger
	return logger
}
