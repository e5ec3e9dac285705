package logger

import "strings"

var globalLogger = New(INFO, TextFormat)

// Configure replaces the global logger using level and format names from
// configuration. Unknown names keep the previous setting.
func Configure(level, format string) {
	l := globalLogger.level
	if parsed, ok := ParseLevel(level); ok {
		l = parsed
	}
	f := globalLogger.format
	if parsed, ok := ParseFormat(format); ok {
		f = parsed
	}
	globalLogger = New(l, f)
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(level string) (Level, bool) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(format string) (Format, bool) {
	switch strings.ToLower(format) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	default:
		return TextFormat, false
	}
}

// WithComponent returns a component-scoped copy of the global logger.
func WithComponent(component string) *Logger {
	return globalLogger.WithComponent(component)
}

// Info logs an info message using the global logger.
func Info(message string, fields ...map[string]interface{}) {
	globalLogger.Info(message, fields...)
}

// Warn logs a warning using the global logger.
func Warn(message string, fields ...map[string]interface{}) {
	globalLogger.Warn(message, fields...)
}

// Error logs an error message using the global logger.
func Error(message string, err error, fields ...map[string]interface{}) {
	globalLogger.Error(message, err, fields...)
}

// Infof logs a formatted info message using the global logger.
func Infof(format string, args ...interface{}) {
	globalLogger.Infof(format, args...)
}

// Warnf logs a formatted warning using the global logger.
func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

// Errorf logs a formatted error message using the global logger.
func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}

// Fatalf logs a formatted fatal message using the global logger and exits.
func Fatalf(format string, args ...interface{}) {
	globalLogger.Fatalf(format, args...)
}
