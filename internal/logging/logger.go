package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ComponentLogger wraps zerolog with component identification
type ComponentLogger struct {
	logger zerolog.Logger
}

// NewComponentLogger creates a logger tagged with a component name and version
func NewComponentLogger(component string, version string) *ComponentLogger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("component", component).
		Str("version", version).
		Logger()

	// Default to info unless DEBUG is set
	if strings.EqualFold(os.Getenv("DEBUG"), "true") || os.Getenv("DEBUG") == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return &ComponentLogger{logger: logger}
}

// Logger returns the underlying zerolog logger
func (c *ComponentLogger) Logger() zerolog.Logger {
	return c.logger
}

// SetLevel adjusts the global log level
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Debug logs a debug message
func (c *ComponentLogger) Debug() *zerolog.Event {
	return c.logger.Debug()
}

// Info logs an info message
func (c *ComponentLogger) Info() *zerolog.Event {
	return c.logger.Info()
}

// Warn logs a warning message
func (c *ComponentLogger) Warn() *zerolog.Event {
	return c.logger.Warn()
}

// Error logs an error message
func (c *ComponentLogger) Error() *zerolog.Event {
	return c.logger.Error()
}

// Fatal logs a fatal message and exits
func (c *ComponentLogger) Fatal() *zerolog.Event {
	return c.logger.Fatal()
}
