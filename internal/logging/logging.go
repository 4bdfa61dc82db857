// Package logging provides the structured logger used across the engine,
// shards, and CLI. It wraps github.com/charmbracelet/log so a component
// can get a consistently formatted, leveled, optionally prefixed logger
// without pulling the charmbracelet API into every package directly.
// See doc.go for an overview.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Level is the logger's verbosity level.
type Level = log.Level

// Log levels, re-exported so callers need not import charmbracelet/log
// directly.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
	FatalLevel = log.FatalLevel
)

// Logger wraps a charmbracelet/log.Logger.
type Logger struct {
	*log.Logger
}

// Config holds logger construction options.
type Config struct {
	Level  string
	Prefix string
	Output io.Writer
}

// DefaultConfig returns the configuration used when no Config is given:
// info level, no prefix, stderr — so diagnostic logging never mixes with
// the CSV output written to stdout.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Prefix: "",
		Output: os.Stderr,
	}
}

// New builds a Logger from cfg, falling back to DefaultConfig for a nil
// cfg or a nil Output.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	l := log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          cfg.Prefix,
	})
	l.SetLevel(ParseLevel(cfg.Level))
	return &Logger{Logger: l}
}

// ParseLevel parses a case-insensitive level name, defaulting to Info for
// anything unrecognized rather than failing a batch run over a logging
// misconfiguration.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// Component returns a child Logger prefixed with name, e.g. "shard-3" or
// "disputestore", sharing the parent's level and output.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.WithPrefix(name)}
}
