package metricsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/qualitydash/internal/query"
)

func threeIssues() *SearchResult {
	return &SearchResult{Total: 3, ViewURL: "http://jira/view", Issues: []Issue{
		{Key: "P-1", Fields: map[string]any{"customfield_10002": "2"}},
		{Key: "P-2", Fields: map[string]any{"customfield_10002": 10.0}},
		{Key: "P-3", Fields: map[string]any{"customfield_10002": nil}},
	}}
}

func TestIssueFilter_CountIssues(t *testing.T) {
	tracker := &fakeTracker{results: map[string]*SearchResult{
		"a": {Total: 5}, "b": {Total: 7},
	}}
	f := NewIssueFilter(tracker)

	assert.Equal(t, 5, f.CountIssues(context.Background(), query.QueryTemplate("a")))
	assert.Equal(t, 12, f.CountIssues(context.Background(), query.Of("a", "b")...))
	assert.Equal(t, 0, f.CountIssues(context.Background()))
}

func TestIssueFilter_CountIssues_AnyFailureIsUnknown(t *testing.T) {
	for _, failing := range []string{"a", "b", "c"} {
		t.Run(failing, func(t *testing.T) {
			tracker := &fakeTracker{
				results: map[string]*SearchResult{"a": {Total: 1}, "b": {Total: 2}, "c": {Total: 3}},
				fail:    map[string]bool{failing: true},
			}
			got := NewIssueFilter(tracker).CountIssues(context.Background(), query.Of("a", "b", "c")...)
			assert.Equal(t, Unknown, got)
		})
	}
}

func TestIssueFilter_SumField(t *testing.T) {
	tracker := &fakeTracker{results: map[string]*SearchResult{"12345": threeIssues()}}
	f := NewIssueFilter(tracker)
	assert.Equal(t, 12, f.SumField(context.Background(), "customfield_10002", query.FilterID("12345")))
}

func TestIssueFilter_SumField_Errors(t *testing.T) {
	failing := &fakeTracker{fail: map[string]bool{"12345": true}}
	assert.Equal(t, Unknown, NewIssueFilter(failing).SumField(context.Background(), "f", query.FilterID("12345")))

	garbage := &fakeTracker{results: map[string]*SearchResult{"q": {Issues: []Issue{
		{Key: "P-1", Fields: map[string]any{"f": "lots"}},
	}}}}
	assert.Equal(t, Unknown, NewIssueFilter(garbage).SumField(context.Background(), "f", query.QueryTemplate("q")))
}

func TestIssueFilter_SumField_MissingFieldIsZero(t *testing.T) {
	tracker := &fakeTracker{results: map[string]*SearchResult{"q": {Issues: []Issue{
		{Key: "P-1", Fields: map[string]any{}},
		{Key: "P-2", Fields: map[string]any{"f": 4.0}},
	}}}}
	assert.Equal(t, 4, NewIssueFilter(tracker).SumField(context.Background(), "f", query.QueryTemplate("q")))
}

func TestIssueFilter_CountIssuesWithFieldEmpty(t *testing.T) {
	tracker := &fakeTracker{results: map[string]*SearchResult{"12345": threeIssues()}}
	f := NewIssueFilter(tracker)
	assert.Equal(t, 1, f.CountIssuesWithFieldEmpty(context.Background(), "customfield_10002", query.FilterID("12345")))

	failing := &fakeTracker{fail: map[string]bool{"12345": true}}
	assert.Equal(t, Unknown, NewIssueFilter(failing).CountIssuesWithFieldEmpty(context.Background(), "f", query.FilterID("12345")))
}

func TestIssueFilter_MetricSourceURLs(t *testing.T) {
	tracker := &fakeTracker{
		results: map[string]*SearchResult{"12345": threeIssues()},
		fail:    map[string]bool{"broken": true},
	}
	urls := NewIssueFilter(tracker).MetricSourceURLs(context.Background(), query.FilterID("12345"), query.QueryTemplate("broken"))
	assert.Equal(t, []string{"http://jira/view"}, urls)
}
