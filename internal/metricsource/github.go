// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/davetashner/qualitydash/internal/query"
)

// githubAPI is the subset of the go-github client used here.
type githubAPI interface {
	SearchIssues(ctx context.Context, q string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// realGitHubAPI wraps the real go-github client to implement githubAPI.
type realGitHubAPI struct {
	client *github.Client
}

func (r *realGitHubAPI) SearchIssues(ctx context.Context, q string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error) {
	return r.client.Search.Issues(ctx, q, opts)
}

func (r *realGitHubAPI) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	return r.client.Repositories.GetLatestRelease(ctx, owner, repo)
}

// Compile-time check that GitHubTracker implements Tracker.
var _ Tracker = (*GitHubTracker)(nil)

// GitHubTracker is a Tracker backed by the GitHub issue search API. Query
// templates use GitHub search syntax, e.g. "repo:{project} is:issue is:open".
type GitHubTracker struct {
	api githubAPI
}

// NewGitHubTracker returns a tracker authenticated with token. An empty
// token uses anonymous access.
func NewGitHubTracker(token string) *GitHubTracker {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return NewGitHubTrackerFromClient(client)
}

// NewGitHubTrackerFromClient wraps a configured go-github client, such as
// one pointed at a GitHub Enterprise server.
func NewGitHubTrackerFromClient(client *github.Client) *GitHubTracker {
	return &GitHubTracker{api: &realGitHubAPI{client: client}}
}

// Search runs a GitHub issue search. Saved filters do not exist on GitHub.
func (g *GitHubTracker) Search(ctx context.Context, q query.Template) (*SearchResult, error) {
	if q.IsFilter() {
		return nil, fmt.Errorf("%w: github has no saved filter %s", ErrUnsupported, q.Text)
	}
	res, _, err := g.api.SearchIssues(ctx, q.Text, &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 100}})
	if err != nil {
		return nil, fmt.Errorf("%w: github search: %v", ErrUnavailable, err)
	}
	if res.Total == nil {
		return nil, fmt.Errorf("%w: key %q not found in search response", ErrMalformed, "total_count")
	}

	result := &SearchResult{
		Total:   res.GetTotal(),
		ViewURL: "https://github.com/issues?q=" + url.QueryEscape(q.Text),
	}
	for _, issue := range res.Issues {
		labels := make([]any, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		fields := map[string]any{
			"title":    issue.GetTitle(),
			"state":    issue.GetState(),
			"comments": float64(issue.GetComments()),
			"labels":   labels,
		}
		if issue.Assignee != nil {
			fields["assignee"] = issue.Assignee.GetLogin()
		} else {
			fields["assignee"] = nil
		}
		if issue.Milestone != nil {
			fields["milestone"] = issue.Milestone.GetTitle()
		} else {
			fields["milestone"] = nil
		}
		result.Issues = append(result.Issues, Issue{Key: fmt.Sprintf("#%d", issue.GetNumber()), Fields: fields})
	}
	return result, nil
}

// FieldID maps a label to one of the fields Search exposes. GitHub has no
// custom fields.
func (g *GitHubTracker) FieldID(_ context.Context, label string) (string, error) {
	switch id := strings.ToLower(label); id {
	case "title", "state", "comments", "labels", "assignee", "milestone":
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, label)
}

// LatestRelease returns the tag name of the latest release of owner/repo.
func (g *GitHubTracker) LatestRelease(ctx context.Context, owner, repo string) (string, error) {
	rel, _, err := g.api.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("%w: latest release of %s/%s: %v", ErrUnavailable, owner, repo, err)
	}
	return rel.GetTagName(), nil
}
