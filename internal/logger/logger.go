// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// Design goals:
//   - Simple API (Errorf, Warnf, Infof, Debugf, Tracef)
//   - Centralized verbosity control
//   - Zero formatting logic at call sites
//
// The package is backed by zerolog. Output goes to stderr so logs stay
// separated from normal program output, which matters for CLI tools and
// pipelines.
//
// Example usage:
//
//	logger.Setup("debug", "console")
//	logger.Infof("starting analyzer")
//	logger.Debugf("spot=%f target=%f", spot, target)
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var zlog zerolog.Logger

func init() {
	zlog = newLogger("info", "console")
}

// Setup reconfigures the global logger. Typically called once during
// application startup, after parsing CLI flags or loading config.
func Setup(level, format string) {
	zlog = newLogger(level, format)
}

func newLogger(level, format string) zerolog.Logger {
	var output io.Writer
	if format == "console" || format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	} else {
		// JSON output (default)
		output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(level))

	return zerolog.New(output).With().Timestamp().Logger()
}

// parseLevel converts a string log level to zerolog.Level.
func parseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Errorf logs an error-level message.
// Use this for failures that require attention.
func Errorf(format string, args ...any) {
	zlog.Error().Msgf(format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...any) {
	zlog.Warn().Msgf(format, args...)
}

// Infof logs an informational message.
// Use this for major lifecycle events.
func Infof(format string, args ...any) {
	zlog.Info().Msgf(format, args...)
}

// Debugf logs debugging information.
// Use this for diagnostic output useful during development.
func Debugf(format string, args ...any) {
	zlog.Debug().Msgf(format, args...)
}

// Tracef logs very detailed execution traces.
// Use this sparingly due to high volume.
func Tracef(format string, args ...any) {
	zlog.Trace().Msgf(format, args...)
}
