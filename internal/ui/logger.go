// Package ui provides terminal output for binstall: a small leveled
// logger and a download progress bar. All output goes to stderr so the
// installed binary path can be piped from stdout cleanly.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugStyle = lipgloss.NewStyle().Faint(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Logger writes leveled, optionally colorized messages with trailing
// key-value pairs. Debug messages are dropped unless debug mode is on.
type Logger struct {
	w     io.Writer
	debug bool
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer, debug bool) *Logger {
	return &Logger{w: w, debug: debug}
}

// NewStderrLogger creates a logger writing to os.Stderr.
func NewStderrLogger(debug bool) *Logger {
	return NewLogger(os.Stderr, debug)
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.emit(debugStyle, "debug", msg, keysAndValues)
}

// Info logs an info-level message with optional key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.emit(infoStyle, "info", msg, keysAndValues)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.emit(warnStyle, "warning", msg, keysAndValues)
}

// Error logs an error-level message with optional key-value pairs.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.emit(errorStyle, "error", msg, keysAndValues)
}

func (l *Logger) emit(style lipgloss.Style, level, msg string, keysAndValues []interface{}) {
	var b strings.Builder
	b.WriteString(style.Render(level))
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	// Odd trailing key gets printed without a value rather than dropped
	if len(keysAndValues)%2 == 1 {
		fmt.Fprintf(&b, " %v=", keysAndValues[len(keysAndValues)-1])
	}
	fmt.Fprintln(l.w, b.String())
}
