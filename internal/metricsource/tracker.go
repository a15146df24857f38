// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"

	"github.com/davetashner/qualitydash/internal/query"
)

// Issue is one matched issue with its raw field values as decoded from JSON.
type Issue struct {
	Key    string
	Fields map[string]any
}

// SearchResult is the outcome of one tracker query.
type SearchResult struct {
	Total   int
	Issues  []Issue
	ViewURL string // human-facing url showing the same result set
}

// Tracker is an issue tracker backend.
type Tracker interface {
	// Search runs a query template or saved filter.
	Search(ctx context.Context, q query.Template) (*SearchResult, error)
	// FieldID resolves a custom field label to the tracker's field id. It
	// returns ErrUnknownField when the label does not exist.
	FieldID(ctx context.Context, label string) (string, error)
}
