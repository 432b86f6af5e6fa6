package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// Format selects how log entries are rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config configures New
type Config struct {
	Level  string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format Format `toml:"format" validate:"omitempty,oneof=text json"`
}

// New creates a logger writing to stderr
func New(cfg Config) *log.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(cfg Config, w io.Writer) *log.Logger {
	level := log.InfoLevel
	if cfg.Level != "" {
		level = log.ParseLevel(cfg.Level)
	}

	var writer log.Writer
	switch cfg.Format {
	case FormatJSON:
		writer = &log.IOWriter{Writer: w}
	default:
		writer = &log.ConsoleWriter{Writer: w}
	}
	return &log.Logger{
		Level:  level,
		Writer: writer,
	}
}

// Discard returns a logger that drops every entry
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.ErrorLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}
