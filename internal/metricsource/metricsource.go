// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package metricsource holds the adapters that turn external systems
// (issue trackers, security scan reports, CI servers, availability
// monitors) into numeric measurements.
//
// Public adapter operations never return errors. A measurement that cannot
// be determined is reported as Unknown after a single log line; internal
// helpers return errors so that aggregates can short-circuit.
package metricsource

import (
	"errors"
	"log/slog"

	"github.com/davetashner/qualitydash/internal/redact"
)

// Unknown is the measurement value meaning "could not be determined".
const Unknown = -1

var (
	// ErrUnavailable wraps transport failures: unreachable host, HTTP error
	// status, or an exhausted retry budget.
	ErrUnavailable = errors.New("metric source unavailable")

	// ErrMalformed wraps responses that could not be decoded or lack an
	// expected key.
	ErrMalformed = errors.New("malformed metric source response")

	// ErrUnknownField is returned when a custom field label has no
	// tracker-side identifier.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnsupported is returned for query kinds a backend cannot run.
	ErrUnsupported = errors.New("unsupported query")
)

// warn logs a recovered adapter failure with the error redacted.
func warn(msg string, err error, attrs ...any) {
	slog.Warn(msg, append(attrs, "error", redact.Error(err))...)
}
