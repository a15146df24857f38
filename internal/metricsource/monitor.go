// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
)

// Monitor reads an availability monitor status API returning
// {"monitors": [{"name": ..., "status": "up"|"down"|...}]}.
type Monitor struct {
	url    string
	client *Client
}

// NewMonitor returns a Monitor reading the status document at statusURL.
func NewMonitor(statusURL string, client *Client) *Monitor {
	return &Monitor{url: statusURL, client: client}
}

// URL returns the status url.
func (m *Monitor) URL() string { return m.url }

type monitorStatus struct {
	Monitors *[]struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"monitors"`
}

// DownCount returns the number of monitored services that are not up.
func (m *Monitor) DownCount(ctx context.Context) int {
	down, err := m.down(ctx)
	if err != nil {
		warn("Couldn't read monitor status", err, "url", m.url)
		return Unknown
	}
	return len(down)
}

// DownServices returns the names of the services that are not up, or nil
// when the status cannot be read.
func (m *Monitor) DownServices(ctx context.Context) []string {
	down, err := m.down(ctx)
	if err != nil {
		warn("Couldn't read monitor status", err, "url", m.url)
		return nil
	}
	return down
}

func (m *Monitor) down(ctx context.Context) ([]string, error) {
	var status monitorStatus
	if err := m.client.GetJSON(ctx, m.url, &status); err != nil {
		return nil, err
	}
	if status.Monitors == nil {
		return nil, fmt.Errorf("%w: key %q not found", ErrMalformed, "monitors")
	}
	down := []string{}
	for _, mon := range *status.Monitors {
		if mon.Status != "up" {
			down = append(down, mon.Name)
		}
	}
	return down, nil
}
