// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Checkmarx counts static analysis alerts per risk level through the
// Checkmarx OData API. The server is typically reached with certificate
// verification disabled; see WithInsecureTLS.
type Checkmarx struct {
	baseURL string
	client  *Client
	results *lruCache[int]
}

// NewCheckmarx returns a Checkmarx adapter for the server at baseURL.
func NewCheckmarx(baseURL string, client *Client) *Checkmarx {
	return &Checkmarx{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		results: newLRUCache[int](defaultCacheSize),
	}
}

// URL returns the server base url.
func (c *Checkmarx) URL() string { return c.baseURL }

// Alerts returns the number of alerts of the given risk level summed over
// the projects, or Unknown when any project cannot be read.
func (c *Checkmarx) Alerts(ctx context.Context, risk RiskLevel, projects ...string) int {
	key := cacheKey(append([]string{string(risk)}, projects...)...)
	if n, ok := c.results.Get(key); ok {
		return n
	}

	total := 0
	for _, project := range projects {
		slog.Debug("checkmarx: fetching project", "project", project)
		n, err := c.projectAlerts(ctx, risk, project)
		if err != nil {
			warn("Couldn't parse alerts", err, "risk_level", string(risk), "url", c.baseURL, "project", project)
			total = Unknown
			break
		}
		total += n
	}
	c.results.Add(key, total)
	return total
}

func (c *Checkmarx) projectAlerts(ctx context.Context, risk RiskLevel, project string) (int, error) {
	var body map[string]any
	if err := c.client.GetJSON(ctx, c.projectURL(project), &body); err != nil {
		return 0, err
	}
	raw, ok := body[risk.Title()]
	if !ok {
		return 0, fmt.Errorf("%w: key %q not found", ErrMalformed, risk.Title())
	}
	if raw == nil {
		return 0, fmt.Errorf("%w: key %q has no value", ErrMalformed, risk.Title())
	}
	n, err := numericField(raw)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (c *Checkmarx) projectURL(project string) string {
	name := strings.ReplaceAll(project, "'", "''")
	params := url.Values{}
	params.Set("$expand", "LastScan")
	params.Set("$filter", "LastScan/Results/any(r: r/Severity eq CxDataRepository.Severity'High' or "+
		"r/Severity eq CxDataRepository.Severity'Medium') and Name eq '"+name+"'")
	return c.baseURL + "/Cxwebinterface/odata/v1/Projects?" + params.Encode()
}
