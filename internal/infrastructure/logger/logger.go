package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the structured logger
type Options struct {
	ServiceName string
	Level       zerolog.Level
	Format      string // "json" or "console"
	Output      io.Writer
}

// Logger wraps zerolog and carries per-request fields through context.Context.
// A nil *Logger discards everything.
type Logger struct {
	base *zerolog.Logger
}

type ctxKey struct{}

// New builds a logger writing to opts.Output (stdout by default)
func New(opts Options) *Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	if opts.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.
		New(output).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(opts.Level)

	return &Logger{base: &logger}
}

// Nop returns a logger that writes nothing
func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{base: &logger}
}

// ParseLevel maps a config string to a zerolog level, defaulting to info
func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(levelString); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

func (l *Logger) fromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
			return entry
		}
	}
	return l.base
}

// WithFields returns a context whose log lines carry fields
func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	if l == nil {
		return ctx
	}
	builder := l.fromContext(ctx).With()
	for k, v := range fields {
		builder = builder.Interface(k, v)
	}
	entry := builder.Logger()
	return context.WithValue(ctx, ctxKey{}, &entry)
}

// WithRequestID tags every line logged with ctx with the request id
func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithFields(ctx, map[string]any{"request_id": requestID})
}

// Debug logs msg at debug level with optional fields
func (l *Logger) Debug(ctx context.Context, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.fromContext(ctx).Debug().Fields(fields).Msg(msg)
}

// Info logs msg at info level with optional fields
func (l *Logger) Info(ctx context.Context, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.fromContext(ctx).Info().Fields(fields).Msg(msg)
}

// Warn logs msg at warn level with optional fields
func (l *Logger) Warn(ctx context.Context, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.fromContext(ctx).Warn().Fields(fields).Msg(msg)
}

// Error logs msg and err at error level
func (l *Logger) Error(ctx context.Context, msg string, err error) {
	if l == nil {
		return
	}
	event := l.fromContext(ctx).Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
