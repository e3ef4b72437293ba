package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel  = "LOFITIMER_LOG_LEVEL"
	EnvLogFormat = "LOFITIMER_LOG_FORMAT"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	Output     io.Writer
}

// DefaultConfig returns console output at info level.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var output io.Writer = out
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ApplyEnv overrides level and format from the environment when set to known values.
func ApplyEnv(cfg Config) Config {
	if level, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = level
	}
	if format, ok := ParseFormat(os.Getenv(EnvLogFormat)); ok {
		cfg.Format = format
	}
	return cfg
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(value string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "off", "disabled":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// ParseFormat validates an output format name.
func ParseFormat(value string) (string, bool) {
	switch format := strings.ToLower(strings.TrimSpace(value)); format {
	case "json", "console":
		return format, true
	default:
		return "", false
	}
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
