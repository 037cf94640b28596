// Package logger provides the anvilctl operational logger: discarding by
// default, enabled to a rotated file with --verbose. Log calls that carry an
// errs.Error are routed to a slog level derived from that error's packed
// severity, and get the error's domain/code attached as structured fields,
// so a warning-severity condition never floods the log at Error level and a
// fatal one never gets buried at Info.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/UniquesKernel/anvil/pkg/errs"
)

// L is the global logger instance, initialized to discard all output.
// Call Init before any logging calls to enable it.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix     = "anvilctl-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded.
	LogDir  string     // Directory for log files. Default: ~/.anvilctl/logs
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled.
}

// Init configures logging. Call from main() before any log calls. Every
// invocation of anvilctl gets its own log file, named with the process's PID
// alongside the date, since short-lived CLI runs on the same day would
// otherwise all append to one file.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logDir = filepath.Join(home, ".anvilctl", "logs")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	cleanOldLogs(logDir)

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+"-"+strconv.Itoa(os.Getpid())+logSuffix)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

func cleanOldLogs(logDir string) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		if n := len("2006-01-02"); len(dateStr) > n && dateStr[n] == '-' {
			// Strip the PID suffix appended after the date, e.g. "2024-01-05-9142".
			dateStr = dateStr[:n]
		}
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

// levelForSeverity maps a packed errs.Severity onto the slog level it should
// be reported at: a warning-severity allocator condition (e.g. a pool
// running low) should not be logged at the same level as an out-of-memory
// failure or a fatal invariant violation.
func levelForSeverity(s errs.Severity) slog.Level {
	switch s {
	case errs.SeverityWarning:
		return slog.LevelWarn
	case errs.SeverityFailure, errs.SeverityFatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogError logs an allocator operation's outcome. If err is an errs.Error,
// its packed domain and code are attached as structured fields and the log
// level is derived from its severity; any other error is logged at Error
// level with only its text. A nil err logs nothing.
func LogError(msg string, err error, args ...any) {
	if err == nil {
		return
	}
	ae, ok := err.(errs.Error)
	if !ok {
		L.Error(msg, append(args, "error", err.Error())...)
		return
	}
	fields := append(args, "domain", ae.Domain().String(), "code", ae.Code(), "error", ae.Message())
	L.Log(context.Background(), levelForSeverity(ae.Severity()), msg, fields...)
}
