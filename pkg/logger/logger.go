package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var zlog = zerolog.Nop()

// Init builds the process logger: console output in development, JSON
// everywhere else.
func Init(env string) zerolog.Logger {
	var w io.Writer
	level := zerolog.InfoLevel

	if env == "development" || env == "dev" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	} else {
		w = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zlog = zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", "catalog-app").
		Logger()
	return zlog
}

// Get returns the logger built by Init, or a no-op logger before Init.
func Get() zerolog.Logger {
	return zlog
}

func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}
