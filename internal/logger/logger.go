// Package logger provides the structured logger shared by the command-line
// tools. The computation engine itself never logs.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance
var Logger *log.Logger

// output is where the global logger and component loggers write
var output io.Writer = os.Stderr

func init() {
	Logger = newLogger(output, log.InfoLevel)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// Configure sets the level and destination of the global logger.
// An empty file keeps logging on stderr. The returned closer releases the
// log file and is a no-op otherwise.
func Configure(level, file string) (io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var closer io.Closer = nopCloser{}
	w := io.Writer(os.Stderr)
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	SetOutput(w, lvl)
	return closer, nil
}

// SetOutput replaces the global logger with one writing to w at level
func SetOutput(w io.Writer, level log.Level) {
	output = w
	Logger = newLogger(w, level)
}

// ParseLevel converts a level name to a log level. An empty name means info.
func ParseLevel(level string) (log.Level, error) {
	if level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

// NewComponent creates a logger with a prefix and styled keys for
// component-specific logging. It shares the global logger's output and level.
func NewComponent(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("240")).
		Foreground(lipgloss.Color("15"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("196")).
		Foreground(lipgloss.Color("15"))

	styles.Keys["state"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["input"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styles.Keys["machine"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["state"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

	l := log.NewWithOptions(output, log.Options{
		Prefix: prefix,
		Level:  Logger.GetLevel(),
	})
	l.SetStyles(styles)
	return l
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
