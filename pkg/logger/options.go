package logger

import (
	"io"
	"log/slog"
)

// Format selects the handler behind a logger built with New.
type Format string

const (
	// FormatText is slog's key=value text handler.
	FormatText Format = "text"

	// FormatJSON is slog's JSON handler, one object per line.
	FormatJSON Format = "json"

	// FormatPretty is the colorized charmbracelet/log handler.
	FormatPretty Format = "pretty"
)

// Option configures a logger created with New.
type Option func(*config)

// WithDebug lowers the level to Debug when true.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = slog.LevelDebug
		} else {
			c.level = slog.LevelInfo
		}
	}
}

// WithFormat picks the handler. Unknown formats fall back to text.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithWriter overrides the output writer. Defaults to os.Stderr so stream
// output on stdout stays clean.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// WithTimestamp toggles timestamps on pretty output. Text and JSON records
// always carry one.
func WithTimestamp(ts bool) Option {
	return func(c *config) {
		c.timestamp = ts
	}
}
