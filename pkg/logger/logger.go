// Package logger builds the *slog.Logger used across the dify client and CLI
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
)

type config struct {
	level     slog.Level
	format    Format
	writer    io.Writer
	timestamp bool
}

// New creates a *slog.Logger. Without options it writes text records at Info
// level to os.Stderr.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level:     slog.LevelInfo,
		format:    FormatText,
		writer:    os.Stderr,
		timestamp: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.writer == nil {
		c.writer = os.Stderr
	}

	switch c.format {
	case FormatPretty:
		return slog.New(charmlog.NewWithOptions(c.writer, charmlog.Options{
			Level:           charmLevel(c.level),
			ReportTimestamp: c.timestamp,
			TimeFormat:      time.TimeOnly,
		}))
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(c.writer, &slog.HandlerOptions{Level: c.level}))
	default:
		return slog.New(slog.NewTextHandler(c.writer, &slog.HandlerOptions{Level: c.level}))
	}
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}

// Nop returns a logger that discards everything. Library components default
// to it when no logger is supplied.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

// OrNop returns l, or Nop when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
