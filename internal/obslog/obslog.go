// Package obslog wraps charmbracelet/log with the three levels the solver
// driver and CLI use: info (game start/end), debug (per-decision chosen cell
// and bomb probability), and trace (full board dump after each step).
// charmbracelet/log ships no trace level, so one is defined below DebugLevel
// and gated here before delegating to the underlying logger.
package obslog

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// TraceLevel sits below log.DebugLevel; charmbracelet/log has no native
// level finer than Debug.
const TraceLevel log.Level = log.DebugLevel - 4

// Logger wraps a *log.Logger, adding a Trace method gated on a level the
// underlying library doesn't know about.
type Logger struct {
	*log.Logger
	level log.Level
}

// New builds a Logger writing to w at the given level.
func New(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           minLevel(level),
		ReportTimestamp: true,
	})
	return &Logger{Logger: l, level: level}
}

// Default builds a Logger writing to stderr at info level.
func Default() *Logger {
	return New(os.Stderr, log.InfoLevel)
}

// minLevel clamps TraceLevel to DebugLevel for the underlying logger, since
// it has no concept of anything finer; Trace itself gates on the real level.
func minLevel(level log.Level) log.Level {
	if level < log.DebugLevel {
		return log.DebugLevel
	}
	return level
}

// Trace logs at the Trace level: only emitted when the Logger was built with
// a level at or below TraceLevel.
func (l *Logger) Trace(msg string, keyvals ...any) {
	if l.level > TraceLevel {
		return
	}
	l.Logger.Debug(msg, keyvals...)
}

// ParseLevel converts a CLI --log-level string into a log.Level, accepting
// the extra "trace" name TraceLevel adds alongside charmbracelet/log's own
// names.
func ParseLevel(s string) (log.Level, error) {
	switch s {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("obslog: unknown log level %q", s)
	}
}
