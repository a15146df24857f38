// Package log configures structured logging for qualitydash using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr, as text unless format is "json".
func Setup(verbose, quiet bool, format string) {
	slog.SetDefault(New(os.Stderr, verbose, quiet, format))
}

// New returns a logger writing to w with the same level rules as Setup.
func New(w io.Writer, verbose, quiet bool, format string) *slog.Logger {
	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
