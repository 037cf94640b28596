package errs

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// exitFunc is overridden in tests so a violated invariant does not tear
// down the test binary.
var exitFunc = os.Exit

// LogFileEnv names the environment variable that, when set, receives a copy
// of every invariant violation diagnostic in addition to stderr.
const LogFileEnv = "LOG_FILE"

// Invariant checks cond and, if false, prints a diagnostic identifying expr,
// the caller's location, err, and the formatted detail message, then
// terminates the process. Invariant violations are never recoverable: this
// function does not return when cond is false.
func Invariant(expr string, cond bool, err Error, format string, args ...any) {
	if cond {
		return
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}

	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}

	report := formatViolation(expr, file, line, err, detail)

	fmt.Fprint(os.Stderr, report)
	if logPath := os.Getenv(LogFileEnv); logPath != "" {
		if f, openErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); openErr == nil {
			fmt.Fprint(f, report)
			f.Close()
		}
	}

	exitFunc(2)
}

func formatViolation(expr, file string, line int, err Error, detail string) string {
	msg := fmt.Sprintf("\n*** INVARIANT VIOLATION ***\n")
	msg += fmt.Sprintf("Time: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	msg += fmt.Sprintf("Expression: %s\n", expr)
	msg += fmt.Sprintf("Location: %s:%d\n", file, line)
	msg += fmt.Sprintf("Error: [%s:%02X] %s\n", err.Domain(), err.Code(), err.Message())
	if detail != "" {
		msg += fmt.Sprintf("Details: %s\n", detail)
	}
	return msg
}
