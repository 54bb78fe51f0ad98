// Package errors standardizes how fatal CLI failures are reported: the
// message goes to the log file for later diagnosis and to stderr for the
// user, then the process exits non-zero.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/horizon/internal/logger"
)

// Format renders err as a user-facing message. Nil errors render empty.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Formatf is Format for a printf-style message instead of an error value.
func Formatf(format string, args ...any) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal reports err and exits with code 1. A nil err is a no-op, so call
// sites can pass command results through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	die(err.Error(), Format(err))
}

// Fatalf reports a printf-style message and exits with code 1.
func Fatalf(format string, args ...any) {
	die(fmt.Sprintf(format, args...), Formatf(format, args...))
}

func die(logMsg, userMsg string) {
	logger.Error("command failed", "error", logMsg)
	fmt.Fprintln(os.Stderr, userMsg)
	os.Exit(1)
}
