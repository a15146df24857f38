// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/davetashner/qualitydash/internal/query"
)

const jiraMaxResults = 1000

// Compile-time check that Jira implements Tracker.
var _ Tracker = (*Jira)(nil)

// Jira is a Tracker backed by the Jira REST API v2.
type Jira struct {
	baseURL string
	client  *Client

	mu     sync.Mutex
	fields map[string]string // field label → field id, loaded once
}

// NewJira returns a Jira tracker for the server at baseURL.
func NewJira(baseURL string, client *Client) *Jira {
	return &Jira{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// URL returns the server base url.
func (j *Jira) URL() string { return j.baseURL }

type jiraSearchResponse struct {
	Total  *int `json:"total"`
	Issues []struct {
		Key    string         `json:"key"`
		Fields map[string]any `json:"fields"`
	} `json:"issues"`
}

type jiraFilterResponse struct {
	JQL     string `json:"jql"`
	ViewURL string `json:"viewUrl"`
}

type jiraField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Search runs a JQL query, or the JQL of a saved filter.
func (j *Jira) Search(ctx context.Context, q query.Template) (*SearchResult, error) {
	jql := q.Text
	viewURL := ""
	if q.IsFilter() {
		var f jiraFilterResponse
		if err := j.client.GetJSON(ctx, j.baseURL+"/rest/api/2/filter/"+url.PathEscape(q.Text), &f); err != nil {
			return nil, fmt.Errorf("jira filter %s: %w", q.Text, err)
		}
		jql = f.JQL
		viewURL = f.ViewURL
	}
	if viewURL == "" {
		viewURL = j.baseURL + "/issues/?jql=" + url.QueryEscape(jql)
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", fmt.Sprint(jiraMaxResults))
	var resp jiraSearchResponse
	if err := j.client.GetJSON(ctx, j.baseURL+"/rest/api/2/search?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("jira search: %w", err)
	}
	if resp.Total == nil {
		return nil, fmt.Errorf("%w: key %q not found in search response", ErrMalformed, "total")
	}

	result := &SearchResult{Total: *resp.Total, ViewURL: viewURL}
	for _, issue := range resp.Issues {
		result.Issues = append(result.Issues, Issue{Key: issue.Key, Fields: issue.Fields})
	}
	return result, nil
}

// FieldID resolves a field label such as "Expected number of LTC's" to its
// id. The field list is fetched once per Jira instance.
func (j *Jira) FieldID(ctx context.Context, label string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.fields == nil {
		var fields []jiraField
		if err := j.client.GetJSON(ctx, j.baseURL+"/rest/api/2/field", &fields); err != nil {
			return "", fmt.Errorf("jira fields: %w", err)
		}
		j.fields = make(map[string]string, len(fields))
		for _, f := range fields {
			j.fields[f.Name] = f.ID
		}
	}
	id, ok := j.fields[label]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, label)
	}
	return id, nil
}
