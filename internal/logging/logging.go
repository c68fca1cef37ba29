// Package logging wires the teacher's severity-level dispatch
// (src/textcolor.go's DW_COLOR_INFO/ERROR/DEBUG levels) onto
// github.com/charmbracelet/log, a dependency the teacher's go.mod
// already names but never calls.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level mirrors the teacher's dw_color_e severity axis (textcolor.go),
// collapsed to the subset that's actually a log level rather than a
// terminal color (REC/XMIT/DECODED were packet-direction colors, not
// severities).
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) charmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Logger is a thin facade over *log.Logger. Callers in cmd/irmpd and
// cmd/irmp-analyze use this
// instead of importing charmbracelet/log directly, the same way the
// teacher's dw_printf centralized every text_color_set call site.
type Logger struct {
	l *log.Logger
}

// New builds a Logger writing to w at the given level. Pass os.Stderr
// for the common case; a nil w defaults to os.Stderr.
func New(w io.Writer, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	l.SetLevel(level.charmLevel())
	return &Logger{l: l}
}

// With returns a child Logger with keyvals attached to every line,
// mirroring charmbracelet/log's structured-field convention.
func (lg *Logger) With(keyvals ...any) *Logger {
	return &Logger{l: lg.l.With(keyvals...)}
}

func (lg *Logger) Debug(msg string, keyvals ...any) { lg.l.Debug(msg, keyvals...) }
func (lg *Logger) Info(msg string, keyvals ...any)  { lg.l.Info(msg, keyvals...) }
func (lg *Logger) Warn(msg string, keyvals ...any)  { lg.l.Warn(msg, keyvals...) }
func (lg *Logger) Error(msg string, keyvals ...any) { lg.l.Error(msg, keyvals...) }
