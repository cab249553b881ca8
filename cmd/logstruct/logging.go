package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds a console logger for the given -v count:
// 0 warn, 1 info, 2 debug, 3+ trace.
func newLogger(w io.Writer, verbosity int, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 3:
		level = zerolog.TraceLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: noColor}
	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	return logger
}
