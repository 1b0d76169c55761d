// Package logx configures the process-wide zerolog logger for the quoting
// pipeline. Blank-import pkg/logger/autoload first in main to pick the
// settings up from the environment.
package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects verbosity and output format. JSON lines are the default so
// request traces stay machine-parseable; pretty output is for local runs.
type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

// Init replaces the global logger. Call once at process start, before any
// request handling emits log lines.
func Init(cfg Config) {
	out := io.Writer(os.Stdout)
	if cfg.PrettyFormat {
		out = zerolog.NewConsoleWriter()
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}
