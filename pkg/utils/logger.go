package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger for debug messages. The TUI owns the terminal, so output goes to a file.
var (
	logger  = log.NewWithOptions(io.Discard, log.Options{Prefix: "todoboard"})
	logFile *os.File
)

// Log writes a debug message with optional key/value pairs
func Log(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info writes an informational message, used for request logs
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn writes a warning; these are kept even without verbose mode when a sink exists
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// DefaultLogPath returns the per-day log file used when none is configured
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("todoboard_%s.log", time.Now().Format("2006-01-02")))
}

// InitLogger initializes the logging system. With verbose off nothing is written.
func InitLogger(verbose bool, path string) error {
	if !verbose {
		logger.SetOutput(io.Discard)
		return nil
	}
	if path == "" {
		path = DefaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger.SetOutput(f)
	logger.SetLevel(log.DebugLevel)
	logger.SetReportTimestamp(true)
	Log("verbose logging enabled", "path", path)
	return nil
}

// InitConsoleLogger sends log output to w, used by long-running commands like serve
func InitConsoleLogger(w io.Writer, verbose bool) {
	logger.SetOutput(w)
	logger.SetReportTimestamp(true)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger.SetOutput(io.Discard)
}
