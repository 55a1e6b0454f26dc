// Package logger holds the process-wide zerolog logger.
//
// Call Init once at startup; Get returns the configured logger afterwards.
// Before Init, Get returns a logger writing JSON to stderr so that packages
// used from tests never need to initialise logging themselves.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string
	// Pretty switches to coloured console output.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.RWMutex
	instance = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

func Init(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	mu.Lock()
	instance = l
	mu.Unlock()
	return l
}

func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := instance
	return &l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
