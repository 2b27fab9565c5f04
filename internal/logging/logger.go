// Package logging provides a logging abstraction layer that decouples the
// engine from a specific logging framework. The production implementation is
// backed by logrus; tests use MockLogger.
package logging

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// defaultLogger is the package-wide fallback used by components constructed
// without an explicit logger.
var defaultLogger Logger = NewLogrusAdapter("info", "text")

// GetLogger returns the package default logger.
func GetLogger() Logger {
	return defaultLogger
}

// SetLogger replaces the package default logger. A nil logger is ignored.
func SetLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
