package main

import "fmt"

// Exit codes for the qualitydash CLI.
const (
	ExitOK             = 0 // Every metric was measured.
	ExitInvalidArgs    = 1 // Invalid arguments or a bad config file.
	ExitPartialFailure = 2 // Some metrics could not be measured; the report was written.
	ExitTotalFailure   = 3 // No output produced.
)

// exitCodeError carries a process exit code through cobra's error return.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitPartialFailure:
			msg = "qualitydash: some metrics could not be measured"
		case ExitTotalFailure:
			msg = "qualitydash: no report written"
		default:
			msg = "qualitydash: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
