// Package logger holds the process-wide slog logger used by mediactl.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L = discard()

const (
	logPrefix     = "mediactl-"
	logSuffix     = ".log"
	retentionDays = 30
)

// file is the log file opened by Init, if any.
var file *os.File

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.mediactl/logs
	Output  io.Writer  // If set, logs go here instead of a file
	Level   slog.Level // Minimum log level
	Text    bool       // Text handler instead of JSON
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) error {
	_ = Close()

	if !opts.Enabled {
		L = discard()
		return nil
	}

	out := opts.Output
	if out == nil {
		logDir := opts.LogDir
		if logDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			logDir = filepath.Join(home, ".mediactl", "logs")
		}

		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}

		// Clean up old logs (best-effort, ignore errors)
		cleanOldLogs(logDir, time.Now())

		filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		file = f
		out = f
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Text {
		L = slog.New(slog.NewTextHandler(out, hopts))
	} else {
		L = slog.New(slog.NewJSONHandler(out, hopts))
	}
	return nil
}

// Close closes the log file opened by Init, if any, and resets L to discard.
func Close() error {
	L = discard()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// mediactl-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
