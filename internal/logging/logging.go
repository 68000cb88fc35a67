// Package logging configures the process-wide zerolog logger for the
// paymentform binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the level and output format.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Setup builds a logger from opts, installs it as the global logger and
// returns it. An empty level means info; an empty format means console.
func Setup(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if trimmed := strings.TrimSpace(opts.Level); trimmed != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(trimmed))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: invalid level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: out != os.Stderr}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	return logger, nil
}
