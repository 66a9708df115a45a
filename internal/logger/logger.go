package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger writes leveled entries for one indicator session to the console
// and, when a log directory is configured, to a dated file
type Logger struct {
	symbol  string
	level   LogLevel
	logFile *os.File
	console *log.Logger
	file    *log.Logger
	mu      sync.Mutex
	logDir  string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelDebug     LogLevel = "DEBUG"
	LogLevelInfo      LogLevel = "INFO"
	LogLevelIndicator LogLevel = "INDICATOR"
	LogLevelWarning   LogLevel = "WARN"
	LogLevelError     LogLevel = "ERROR"
)

var severity = map[LogLevel]int{
	LogLevelDebug:     0,
	LogLevelInfo:      1,
	LogLevelIndicator: 1,
	LogLevelWarning:   2,
	LogLevelError:     3,
}

var emoji = map[LogLevel]string{
	LogLevelDebug:     "🔍",
	LogLevelInfo:      "ℹ️ ",
	LogLevelIndicator: "📈",
	LogLevelWarning:   "⚠️ ",
	LogLevelError:     "❌",
}

// ParseLevel converts a LOG_LEVEL value, defaulting to INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarning
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// NewLogger creates a logger for symbol that writes console entries to
// console. An empty logDir disables the file sink.
func NewLogger(console io.Writer, symbol string, level LogLevel, logDir string) (*Logger, error) {
	l := &Logger{
		symbol:  symbol,
		level:   level,
		console: log.New(console, "", 0),
		logDir:  logDir,
	}
	if logDir == "" {
		return l, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(l.GetLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l.logFile = file
	l.file = log.New(file, "", 0)

	l.writeSessionHeader()
	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
📊 INDICATOR SESSION STARTED
================================================================================
Symbol: %s
Started: %s
================================================================================
`, l.symbol, time.Now().Format("2006-01-02 15:04:05"))

	l.file.Print(header)
}

// Enabled reports whether entries at level are written
func (l *Logger) Enabled(level LogLevel) bool {
	return severity[level] >= severity[l.level]
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	l.console.Printf("%s %s", emoji[level], message)

	if l.file != nil {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		l.file.Printf("[%s] [%s] %s", timestamp, level, message)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log(LogLevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// Indicator logs one published indicator value
func (l *Logger) Indicator(name string, latest float64, required int) {
	l.Log(LogLevelIndicator, "%s %s = %.2f (bars used: %d)", l.symbol, name, latest, required)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close writes the session footer and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}

	footer := fmt.Sprintf(`
================================================================================
🛑 INDICATOR SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format("2006-01-02 15:04:05"))
	l.file.Print(footer)

	err := l.logFile.Close()
	l.logFile = nil
	l.file = nil
	return err
}

// GetLogPath returns the current log file path, empty when logging to console only
func (l *Logger) GetLogPath() string {
	if l.logDir == "" {
		return ""
	}
	filename := fmt.Sprintf("%s_%s.log", l.symbol, time.Now().Format("2006-01-02"))
	return filepath.Join(l.logDir, filename)
}
