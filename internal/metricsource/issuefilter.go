// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/davetashner/qualitydash/internal/query"
)

// IssueFilter counts issues matched by tracker queries. When several
// queries are given their results are summed; a failure of any one of them
// discards the whole aggregate and yields Unknown.
type IssueFilter struct {
	tracker Tracker
}

// NewIssueFilter returns an IssueFilter over tracker.
func NewIssueFilter(tracker Tracker) *IssueFilter {
	return &IssueFilter{tracker: tracker}
}

// CountIssues returns the total number of issues matched by qs.
func (f *IssueFilter) CountIssues(ctx context.Context, qs ...query.Template) int {
	total := 0
	for _, q := range qs {
		res, err := f.tracker.Search(ctx, q)
		if err != nil {
			warn("Couldn't count issues", err, "query", q.String())
			return Unknown
		}
		total += res.Total
	}
	return total
}

// SumField sums a numeric field over all issues matched by qs. Empty,
// missing, and null values count as zero; numeric strings are parsed.
func (f *IssueFilter) SumField(ctx context.Context, field string, qs ...query.Template) int {
	var total float64
	for _, q := range qs {
		res, err := f.tracker.Search(ctx, q)
		if err != nil {
			warn("Couldn't sum field", err, "query", q.String(), "key", field)
			return Unknown
		}
		for _, issue := range res.Issues {
			v, err := numericField(issue.Fields[field])
			if err != nil {
				warn("Couldn't sum field", err, "query", q.String(), "key", field, "issue", issue.Key)
				return Unknown
			}
			total += v
		}
	}
	return int(total)
}

// CountIssuesWithFieldEmpty counts issues matched by qs whose field is
// null, missing, or an empty string.
func (f *IssueFilter) CountIssuesWithFieldEmpty(ctx context.Context, field string, qs ...query.Template) int {
	count := 0
	for _, q := range qs {
		res, err := f.tracker.Search(ctx, q)
		if err != nil {
			warn("Couldn't count issues with empty field", err, "query", q.String(), "key", field)
			return Unknown
		}
		for _, issue := range res.Issues {
			if isEmptyField(issue.Fields[field]) {
				count++
			}
		}
	}
	return count
}

// MetricSourceURLs returns the tracker view url of each query. Queries that
// fail are skipped.
func (f *IssueFilter) MetricSourceURLs(ctx context.Context, qs ...query.Template) []string {
	var urls []string
	for _, q := range qs {
		res, err := f.tracker.Search(ctx, q)
		if err != nil {
			warn("Couldn't determine view url", err, "query", q.String())
			continue
		}
		urls = append(urls, res.ViewURL)
	}
	return urls
}

func numericField(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrMalformed, x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: unexpected field value of type %T", ErrMalformed, v)
	}
}

func isEmptyField(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	}
	return false
}
