// Package log is a small leveled logger. The terminal owns stdout while the
// starfield runs, so callers usually point it at a file or io.Discard.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
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
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name, defaulting to INFO
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

type Logger struct {
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		level:  level,
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

// OpenFile returns a logger appending to path, or a discarding logger when
// path is empty. The returned close func is never nil.
func OpenFile(path string, level Level) (*Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

func (l *Logger) Debugf(format string, v ...any) {
	l.logf(LevelDebug, format, v...)
}

func (l *Logger) Infof(format string, v ...any) {
	l.logf(LevelInfo, format, v...)
}

func (l *Logger) Warnf(format string, v ...any) {
	l.logf(LevelWarn, format, v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.logf(LevelError, format, v...)
}

func (l *Logger) logf(level Level, format string, v ...any) {
	if l == nil || level < l.level {
		return
	}
	l.logger.Printf(level.String()+": "+format, v...)
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Level() Level {
	return l.level
}
