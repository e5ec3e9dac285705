// Package logger provides the leveled structured logger used across the
// service. Output is JSON or human-readable text, selected at startup.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Format selects the output encoding.
type Format int

const (
	TextFormat Format = iota
	JSONFormat
)

// Entry is one structured log record.
type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes leveled log entries to a single output.
type Logger struct {
	mu        sync.Mutex
	level     Level
	format    Format
	output    io.Writer
	component string
}

// New creates a logger with the given level and format writing to stdout.
func New(level Level, format Format) *Logger {
	return &Logger{level: level, format: format, output: os.Stdout}
}

// WithComponent returns a copy of the logger scoped to a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{level: l.level, format: l.format, output: l.output, component: component}
}

// SetOutput redirects log output, used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *Logger) log(level Level, message string, fields map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var out string
	if l.format == JSONFormat {
		b, _ := json.Marshal(entry)
		out = string(b) + "\n"
	} else {
		out = formatText(entry)
	}
	l.output.Write([]byte(out))

	if level == FATAL {
		os.Exit(1)
	}
}

func formatText(e Entry) string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Timestamp, e.Level)}
	if e.Component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Component))
	}
	parts = append(parts, e.Message)
	if len(e.Fields) > 0 {
		kv := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			kv = append(kv, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, "fields={"+strings.Join(kv, ", ")+"}")
	}
	if e.Error != "" {
		parts = append(parts, "error="+e.Error)
	}
	return strings.Join(parts, " ") + "\n"
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.log(DEBUG, message, first(fields), nil)
}

// Info logs an info message with optional structured fields.
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.log(INFO, message, first(fields), nil)
}

// Warn logs a warning with optional structured fields.
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.log(WARN, message, first(fields), nil)
}

// Error logs an error message together with the causing error.
func (l *Logger) Error(message string, err error, fields ...map[string]interface{}) {
	l.log(ERROR, message, first(fields), err)
}

// Fatal logs a fatal message and exits the process.
func (l *Logger) Fatal(message string, err error, fields ...map[string]interface{}) {
	l.log(FATAL, message, first(fields), err)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a formatted fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Fatal(fmt.Sprintf(format, args...), nil)
}

func first(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}
