// Package logging provides a leveled, structured logger backed by zerolog.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toZerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLevel parses a log level string. Unknown values yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the output encoding.
type Format int

const (
	FormatConsole Format = iota // human-readable
	FormatJSON
)

// ParseFormat parses "console" or "json". Unknown values yield FormatConsole.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatConsole
}

// Field is a structured key/value attached to a log entry.
type Field func(e *zerolog.Event)

func Str(key, v string) Field { return func(e *zerolog.Event) { e.Str(key, v) } }
func Int(key string, v int) Field { return func(e *zerolog.Event) { e.Int(key, v) } }
func Float(key string, v float64) Field { return func(e *zerolog.Event) { e.Float64(key, v) } }
func Bool(key string, v bool) Field { return func(e *zerolog.Event) { e.Bool(key, v) } }
func Dur(key string, v time.Duration) Field { return func(e *zerolog.Event) { e.Dur(key, v) } }
func Err(err error) Field { return func(e *zerolog.Event) { e.Err(err) } }

// Logger is a leveled structured logger. It is safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
	zl     zerolog.Logger
}

// New creates a console logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{level: level, format: FormatConsole, output: os.Stderr}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	out := l.output
	if l.format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: l.output, TimeFormat: "15:04:05.000", NoColor: true}
	}
	l.zl = zerolog.New(out).Level(l.level.toZerolog()).With().Timestamp().Logger()
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// SetFormat switches between console and JSON output.
func (l *Logger) SetFormat(f Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = f
	l.rebuild()
}

func (l *Logger) event(level Level) *zerolog.Event {
	l.mu.Lock()
	zl := l.zl
	l.mu.Unlock()

	switch level {
	case LevelDebug:
		return zl.Debug()
	case LevelInfo:
		return zl.Info()
	case LevelWarn:
		return zl.Warn()
	default:
		return zl.Error()
	}
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	e := l.event(level)
	if e == nil {
		return
	}
	for _, f := range fields {
		f(e)
	}
	e.Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...Field) { l.log(LevelInfo, msg, fields) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...Field) { l.log(LevelWarn, msg, fields) }

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := &Logger{level: LevelError + 1, output: io.Discard}
	l.zl = zerolog.Nop()
	return l
}
