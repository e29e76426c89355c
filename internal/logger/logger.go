// Package logger provides structured JSON logging and run metrics for pgconf-watch.
//
// Every log line is a single JSON object with a timestamp, level, message, optional
// structured fields and an optional error string. Output goes to stderr by default so
// that stdout stays reserved for reports and machine-readable results.
//
// Loggers derived with With carry fields that are merged into every entry, which is
// how a run tags its lines with the source URL and snapshot path.
//
// Example usage:
//
//	log := logger.Default().With(logger.Fields{"url": sourceURL})
//	log.Info("Fetched conferences", logger.Fields{"count": len(records)})
//
//	logger.Error("Creating issue failed", logger.Fields{
//	    "repository": "owner/repo",
//	}, err)
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

// Level represents log severity. Higher levels are more severe.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the upper-case level name used in log entries
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel converts a case-insensitive level name, defaulting to INFO
func ParseLevel(name string) Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == name {
			return Level(i)
		}
	}
	return LevelInfo
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// sink is the destination shared by a logger and everything derived from it
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

func (s *sink) writeLine(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.Write(append(data, '\n')) // nolint:errcheck
}

// Logger writes leveled JSON entries
type Logger struct {
	sink     *sink
	minLevel Level
	base     Fields
	now      func() time.Time
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(LevelInfo, os.Stderr)
)

// New creates a logger that discards messages below level
func New(level Level, output io.Writer) *Logger {
	return &Logger{
		sink:     &sink{out: output},
		minLevel: level,
		now:      time.Now,
	}
}

// SetDefault replaces the logger used by the package-level functions
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Default returns the logger used by the package-level functions
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// With returns a logger that adds fields to every entry. Fields passed to a
// single call win over these on conflict.
func (l *Logger) With(fields Fields) *Logger {
	child := *l
	child.base = merge(l.base, fields)
	return &child
}

// Enabled reports whether entries at level are written
func (l *Logger) Enabled(level Level) bool {
	return level >= l.minLevel
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    merge(l.base, fields),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		data = []byte(fmt.Sprintf("[%s] %s: %s (marshal error: %v)",
			entry.Timestamp, entry.Level, entry.Message, marshalErr))
	}
	l.sink.writeLine(data)
}

// merge returns a new map holding base overlaid with extra, or nil if both are empty
func merge(base, extra Fields) Fields {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(Fields, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a recovered problem, e.g. an unreadable snapshot treated as empty.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs a failure together with its error.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	Default().Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	Default().Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	Default().Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	Default().Error(message, fields, err)
}
