// Package logger holds the process-wide zerolog logger.
//
// The level comes from LOG_LEVEL (default "warn") and can be lowered at
// runtime with SetLevel, e.g. by the --verbose flag. Output goes to stderr
// so it never mixes with command output.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

var globalLogger zerolog.Logger

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	globalLogger = New(os.Stderr, levelFromEnv())
}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(out).With().Timestamp().Logger().Level(level)
}

func levelFromEnv() zerolog.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	return &globalLogger
}

// Ctx returns the logger stored in ctx, or the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &globalLogger
	}
	if l, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &globalLogger
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// SetLevel updates the global log level.
func SetLevel(level zerolog.Level) {
	globalLogger = globalLogger.Level(level)
}

// SetOutput replaces the global logger's writer, keeping its level.
func SetOutput(w io.Writer) {
	globalLogger = New(w, globalLogger.GetLevel())
}
