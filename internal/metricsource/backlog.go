// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/davetashner/qualitydash/internal/query"
)

// Backlog query keys.
const (
	KeyNrUserStories                  = "nr_user_stories"
	KeyApprovedUserStories            = "approved_user_stories"
	KeyReviewedUserStories            = "reviewed_user_stories"
	KeyNrUserStoriesWithSufficientLTC = "nr_user_stories_with_sufficient_ltcs"
	KeyReviewedLTCs                   = "reviewed_ltcs"
	KeyNrLTCs                         = "nr_ltcs"
	KeyApprovedLTCs                   = "approved_ltcs"
	KeyNrAutomatedLTCs                = "nr_automated_ltcs"
	KeyNrLTCsToBeAutomated            = "nr_ltcs_to_be_automated"
	KeyNrManualLTCs                   = "nr_manual_ltcs"
	KeyNrManualLTCsTooOld             = "nr_manual_ltcs_too_old"
)

// DefaultBacklogQueries returns the JQL used when a key is not overridden.
// The "too old" query takes the day threshold as its positional parameter.
func DefaultBacklogQueries() map[string]query.Templates {
	return map[string]query.Templates{
		KeyNrUserStories: query.Of(`project = "{project}" AND type = Story`),
		KeyApprovedUserStories: query.Of(`project = "{project}" AND type = Story AND ` +
			`"Ready status" = "<font color = \"#888720\"><b>Approved</b></font>"`),
		KeyReviewedUserStories: query.Of(`project = "{project}" AND type = Story AND "Ready status" is not EMPTY`),
		KeyNrUserStoriesWithSufficientLTC: query.Of(`project = "{project}" AND type = Story AND ` +
			`issueFunction in hasLinks("is tested by") AND "Expected number of LTC's" > 0`),
		KeyReviewedLTCs: query.Of(`project = "{project}" AND type = "Logical Test Case" AND "Review comments" is not EMPTY`),
		KeyNrLTCs:       query.Of(`project = "{project}" AND type = "Logical Test Case"`),
		KeyApprovedLTCs: query.Of(`project = "{project}" AND type = "Logical Test Case" AND Approved = Yes`),
		KeyNrAutomatedLTCs: query.Of(`project = "{project}" AND type = "Logical Test Case" AND ` +
			`"Test execution" = "Automated" AND status != open`),
		KeyNrLTCsToBeAutomated: query.Of(`project = "{project}" AND type = "Logical Test Case" AND ` +
			`"Test execution" = "Automated" AND status = open`),
		KeyNrManualLTCs: query.Of(`project = "{project}" AND type = "Logical Test Case" AND "Test execution" = Manual`),
		KeyNrManualLTCsTooOld: query.Of(`project = "{project}" AND type = "Logical Test Case" AND ` +
			`"Test execution" = Manual AND "Last execution" <= -{}d`),
	}
}

// Backlog measures user story and logical test case readiness through
// named queries against an issue tracker.
type Backlog struct {
	tracker           Tracker
	filter            *IssueFilter
	project           string
	expectedLTCsField string
	queries           map[string]query.Templates
}

// NewBacklog returns a Backlog for project. Entries in overrides replace the
// default queries key by key. expectedLTCsField is the label of the custom
// field holding the expected number of logical test cases per story.
func NewBacklog(tracker Tracker, project, expectedLTCsField string, overrides map[string]query.Templates) *Backlog {
	queries := DefaultBacklogQueries()
	for k, v := range overrides {
		queries[k] = v
	}
	return &Backlog{
		tracker:           tracker,
		filter:            NewIssueFilter(tracker),
		project:           project,
		expectedLTCsField: expectedLTCsField,
		queries:           queries,
	}
}

// Queries returns the resolved queries for key.
func (b *Backlog) Queries(key string, extra ...string) query.Templates {
	return query.Resolve(b.queries[key], b.project, extra...)
}

func (b *Backlog) count(ctx context.Context, key string, extra ...string) int {
	return b.filter.CountIssues(ctx, b.Queries(key, extra...)...)
}

// NrUserStories returns the total number of user stories.
func (b *Backlog) NrUserStories(ctx context.Context) int {
	return b.count(ctx, KeyNrUserStories)
}

// ApprovedUserStories returns the number of approved user stories.
func (b *Backlog) ApprovedUserStories(ctx context.Context) int {
	return b.count(ctx, KeyApprovedUserStories)
}

// ReviewedUserStories returns the number of reviewed user stories.
func (b *Backlog) ReviewedUserStories(ctx context.Context) int {
	return b.count(ctx, KeyReviewedUserStories)
}

// ReviewedLTCs returns the number of reviewed logical test cases.
func (b *Backlog) ReviewedLTCs(ctx context.Context) int {
	return b.count(ctx, KeyReviewedLTCs)
}

// NrLTCs returns the number of logical test cases.
func (b *Backlog) NrLTCs(ctx context.Context) int {
	return b.count(ctx, KeyNrLTCs)
}

// ApprovedLTCs returns the number of approved logical test cases.
func (b *Backlog) ApprovedLTCs(ctx context.Context) int {
	return b.count(ctx, KeyApprovedLTCs)
}

// NrAutomatedLTCs returns the number of logical test cases implemented as
// automated tests.
func (b *Backlog) NrAutomatedLTCs(ctx context.Context) int {
	return b.count(ctx, KeyNrAutomatedLTCs)
}

// NrLTCsToBeAutomated returns the number of logical test cases that still
// have to be automated.
func (b *Backlog) NrLTCsToBeAutomated(ctx context.Context) int {
	return b.count(ctx, KeyNrLTCsToBeAutomated)
}

// NrManualLTCsTooOld returns the number of manual logical test cases not
// executed for more than days days. All versions share one query.
func (b *Backlog) NrManualLTCsTooOld(ctx context.Context, _ string, days int) int {
	return b.count(ctx, KeyNrManualLTCsTooOld, strconv.Itoa(days))
}

// NrManualLTCs is not measured by the Jira backlog.
func (b *Backlog) NrManualLTCs(context.Context, string) int { return Unknown }

// DateOfLastManualTest is not measured by the Jira backlog; it returns the
// zero time.
func (b *Backlog) DateOfLastManualTest(context.Context, string) time.Time { return time.Time{} }

// ManualTestExecutionURL is not available from the Jira backlog.
func (b *Backlog) ManualTestExecutionURL(context.Context, string) string { return "" }

// MetricSourceURLs returns the tracker view urls for key.
func (b *Backlog) MetricSourceURLs(ctx context.Context, key string) []string {
	return b.filter.MetricSourceURLs(ctx, b.Queries(key)...)
}

// NrUserStoriesWithSufficientLTCs returns the number of stories whose
// number of issue links is at least the value of the expected-LTC field.
func (b *Backlog) NrUserStoriesWithSufficientLTCs(ctx context.Context) int {
	fieldID, err := b.tracker.FieldID(ctx, b.expectedLTCsField)
	if err != nil {
		if !errors.Is(err, ErrUnknownField) {
			warn("Couldn't resolve field", err, "key", b.expectedLTCsField)
		} else {
			slog.Debug("expected LTC field not configured in tracker", "key", b.expectedLTCsField)
		}
		return Unknown
	}

	var stories []Issue
	for _, q := range b.Queries(KeyNrUserStoriesWithSufficientLTC) {
		res, err := b.tracker.Search(ctx, q)
		if err != nil {
			warn("Couldn't count stories with sufficient logical test cases", err, "query", q.String())
			return Unknown
		}
		stories = append(stories, res.Issues...)
	}

	n := 0
	for _, story := range stories {
		ok, err := hasSufficientLTCs(story, fieldID)
		if err != nil {
			slog.Error("Error processing jira response", "issue", story.Key, "error", err)
			return Unknown
		}
		if ok {
			n++
		}
	}
	return n
}

func hasSufficientLTCs(story Issue, fieldID string) (bool, error) {
	rawLinks, ok := story.Fields["issuelinks"]
	if !ok {
		return false, fmt.Errorf("%w: the key %q not found", ErrMalformed, "issuelinks")
	}
	links, ok := rawLinks.([]any)
	if !ok && rawLinks != nil {
		return false, fmt.Errorf("%w: %q is not a list", ErrMalformed, "issuelinks")
	}
	rawExpected, ok := story.Fields[fieldID]
	if !ok {
		return false, fmt.Errorf("%w: the key %q not found", ErrMalformed, fieldID)
	}
	if rawExpected == nil {
		return false, fmt.Errorf("%w: the key %q has no value", ErrMalformed, fieldID)
	}
	expected, err := numericField(rawExpected)
	if err != nil {
		return false, err
	}
	return float64(len(links)) >= expected, nil
}
