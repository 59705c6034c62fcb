// Package monitoring - logger.go is the zerolog surface for the gateway.
//
// DESIGN: One Logger type serves both uses:
//   - Global() installs a config-driven logger as the process logger,
//     so cmd and the handlers share the operator log stream
//   - New() builds scoped loggers (request logger, alerts) with their
//     own level and sink
//
// Format "auto" picks console output on a terminal and JSON lines
// otherwise, so piped gateway logs stay machine-readable.
package monitoring

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Context keys for request tracking.
type contextKey string

const RequestIDKey contextKey = "request_id"

// Logger wraps zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New creates a new Logger with the given configuration. Unknown levels
// fall back to info; an unwritable file output falls back to stdout.
func New(cfg LoggerConfig) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writer io.Writer
	switch cfg.Output {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			writer = os.Stdout
		} else {
			writer = f
		}
	}

	switch cfg.Format {
	case "console":
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"}
	case "json":
		// JSON lines as-is.
	default: // "auto"
		if f, ok := writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"}
		}
	}

	zl := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Global installs a logger built from cfg as the process-wide default,
// so zerolog/log callers pick up the configured level, format and sink.
func Global(cfg LoggerConfig) {
	log.Logger = New(cfg).zl
}

// Debug returns a debug event.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info returns an info event.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn returns a warn event.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error returns an error event.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// RequestIDFromContext retrieves the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestIDContext returns a new context with the request ID.
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
