package metricsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qualitydash/internal/query"
)

type fakeGitHubAPI struct {
	search     *github.IssuesSearchResult
	searchErr  error
	release    *github.RepositoryRelease
	releaseErr error
	lastQuery  string
}

func (f *fakeGitHubAPI) SearchIssues(_ context.Context, q string, _ *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error) {
	f.lastQuery = q
	return f.search, nil, f.searchErr
}

func (f *fakeGitHubAPI) GetLatestRelease(_ context.Context, _, _ string) (*github.RepositoryRelease, *github.Response, error) {
	return f.release, nil, f.releaseErr
}

func TestGitHubTracker_Search(t *testing.T) {
	api := &fakeGitHubAPI{search: &github.IssuesSearchResult{
		Total: github.Ptr(2),
		Issues: []*github.Issue{
			{Number: github.Ptr(1), Title: github.Ptr("crash"), State: github.Ptr("open"), Comments: github.Ptr(4),
				Labels: []*github.Label{{Name: github.Ptr("bug")}}},
			{Number: github.Ptr(2), Title: github.Ptr("docs"), State: github.Ptr("open"),
				Assignee: &github.User{Login: github.Ptr("octocat")}},
		},
	}}
	g := &GitHubTracker{api: api}

	res, err := g.Search(context.Background(), query.QueryTemplate("repo:acme/app is:issue is:open"))
	require.NoError(t, err)
	assert.Equal(t, "repo:acme/app is:issue is:open", api.lastQuery)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, "#1", res.Issues[0].Key)
	assert.Equal(t, []any{"bug"}, res.Issues[0].Fields["labels"])
	assert.Nil(t, res.Issues[0].Fields["assignee"])
	assert.Equal(t, "octocat", res.Issues[1].Fields["assignee"])
	assert.Contains(t, res.ViewURL, "https://github.com/issues?q=repo%3Aacme%2Fapp")

	f := NewIssueFilter(g)
	assert.Equal(t, 4, f.SumField(context.Background(), "comments", query.QueryTemplate("q")))
	assert.Equal(t, 1, f.CountIssuesWithFieldEmpty(context.Background(), "assignee", query.QueryTemplate("q")))
}

func TestGitHubTracker_SearchErrors(t *testing.T) {
	g := &GitHubTracker{api: &fakeGitHubAPI{searchErr: errors.New("rate limited")}}
	_, err := g.Search(context.Background(), query.QueryTemplate("q"))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = g.Search(context.Background(), query.FilterID("42"))
	assert.ErrorIs(t, err, ErrUnsupported)

	g = &GitHubTracker{api: &fakeGitHubAPI{search: &github.IssuesSearchResult{}}}
	_, err = g.Search(context.Background(), query.QueryTemplate("q"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGitHubTracker_FieldID(t *testing.T) {
	g := &GitHubTracker{api: &fakeGitHubAPI{}}
	id, err := g.FieldID(context.Background(), "Labels")
	require.NoError(t, err)
	assert.Equal(t, "labels", id)

	_, err = g.FieldID(context.Background(), "Expected number of LTC's")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestGitHubTracker_LatestRelease(t *testing.T) {
	g := &GitHubTracker{api: &fakeGitHubAPI{release: &github.RepositoryRelease{TagName: github.Ptr("v1.4.0")}}}
	tag, err := g.LatestRelease(context.Background(), "acme", "qualitydash")
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", tag)

	g = &GitHubTracker{api: &fakeGitHubAPI{releaseErr: errors.New("404")}}
	_, err = g.LatestRelease(context.Background(), "acme", "qualitydash")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGitHubTrackerFromClient_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/issues":
			assert.Equal(t, "repo:acme/qd is:open", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{"total_count": 2, "items": [{"number": 1}, {"number": 2}]}`))
		case "/repos/acme/qd/releases/latest":
			_, _ = w.Write([]byte(`{"tag_name": "v2.0"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := github.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	g := NewGitHubTrackerFromClient(client)

	n := NewIssueFilter(g).CountIssues(context.Background(), query.QueryTemplate("repo:acme/qd is:open"))
	assert.Equal(t, 2, n)

	tag, err := g.LatestRelease(context.Background(), "acme", "qd")
	require.NoError(t, err)
	assert.Equal(t, "v2.0", tag)
}
