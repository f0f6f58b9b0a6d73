package logger

import (
	"io"
	"os"
	"strings"

	"braintree-gateway/internal/config"

	"github.com/rs/zerolog"
)

// New builds the service logger from the Log config. Unknown levels fall back
// to info.
func New(cfg config.Log) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.Log, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
