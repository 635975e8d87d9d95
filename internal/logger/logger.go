// Package logger provides a small leveled logger interface with implementations
// backed by the standard log package, plus null and in-memory loggers for tests.
package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
)

// LogLevel is a log severity.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogError
)

var logLevelPrefix = map[LogLevel]string{
	LogDebug: "DEBUG",
	LogInfo:  "INFO",
	LogError: "ERROR",
}

// String returns the level name.
func (l LogLevel) String() string {
	return logLevelPrefix[l]
}

// ParseLogLevel converts "debug", "info" or "error" to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	for level, name := range logLevelPrefix {
		if strings.EqualFold(name, s) {
			return level, nil
		}
	}
	return LogInfo, fmt.Errorf("invalid log level: %s (valid: debug, info, error)", s)
}

// ILogger is the logging interface used throughout the viewer.
type ILogger interface {
	Printf(level LogLevel, format string, a ...interface{})
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

// StdLogger writes through a *log.Logger, filtering by level.
type StdLogger struct {
	out      *log.Logger
	logLevel LogLevel
}

// New returns a logger writing to w.
func New(w io.Writer, level LogLevel) *StdLogger {
	return &StdLogger{out: log.New(w, "", log.LstdFlags), logLevel: level}
}

// NewDefault returns a logger on the standard library's default logger, so
// it follows log.SetOutput redirections such as a TUI log file.
func NewDefault(level LogLevel) *StdLogger {
	return &StdLogger{out: log.Default(), logLevel: level}
}

func (l *StdLogger) Printf(level LogLevel, format string, a ...interface{}) {
	if level < l.logLevel {
		return
	}
	l.out.Println(logLevelPrefix[level] + ": " + fmt.Sprintf(format, a...))
}

func (l *StdLogger) Debugf(format string, a ...interface{}) { l.Printf(LogDebug, format, a...) }
func (l *StdLogger) Infof(format string, a ...interface{})  { l.Printf(LogInfo, format, a...) }
func (l *StdLogger) Errorf(format string, a ...interface{}) { l.Printf(LogError, format, a...) }

func (l *StdLogger) SetLogLevel(level LogLevel) { l.logLevel = level }
func (l *StdLogger) GetLogLevel() LogLevel      { return l.logLevel }

// NullLogger discards everything.
type NullLogger struct{}

func (NullLogger) Printf(level LogLevel, format string, a ...interface{}) {}
func (NullLogger) Debugf(format string, a ...interface{})                 {}
func (NullLogger) Infof(format string, a ...interface{})                  {}
func (NullLogger) Errorf(format string, a ...interface{})                 {}

// MemLogger records formatted lines, for asserting on log output in tests.
type MemLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *MemLogger) Printf(level LogLevel, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLevelPrefix[level]+": "+fmt.Sprintf(format, a...))
}

func (l *MemLogger) Debugf(format string, a ...interface{}) { l.Printf(LogDebug, format, a...) }
func (l *MemLogger) Infof(format string, a ...interface{})  { l.Printf(LogInfo, format, a...) }
func (l *MemLogger) Errorf(format string, a ...interface{}) { l.Printf(LogError, format, a...) }

// Lines returns a copy of the recorded lines.
func (l *MemLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Contains reports whether any recorded line contains s.
func (l *MemLogger) Contains(s string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
