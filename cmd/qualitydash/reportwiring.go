// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/quality"
)

// buildReport assembles the report model from the measured sections and
// the project config.
func buildReport(cfg *config.Config, catalog quality.Catalog, sections []*quality.Section, date time.Time) *quality.Report {
	r := &quality.Report{
		Title:           cfg.Title,
		Date:            date,
		Sections:        sections,
		Catalog:         catalog,
		Included:        selection(cfg, catalog),
		SourceInstances: cfg.Sources.Instances(),
	}
	for _, res := range cfg.Resources {
		r.Resources = append(r.Resources, quality.Resource{Name: res.Name, URL: res.URL})
	}
	for _, h := range cfg.Dashboard.Headers {
		r.Dashboard.Headers = append(r.Dashboard.Headers, quality.DashboardHeader{Label: h.Label, ColSpan: h.ColSpan})
	}
	for _, row := range cfg.Dashboard.Rows {
		cells := make([]quality.DashboardCell, 0, len(row))
		for _, c := range row {
			cells = append(cells, quality.DashboardCell{
				Ref:     quality.SectionID(c.Section),
				Color:   c.Color,
				ColSpan: c.ColSpan,
				RowSpan: c.RowSpan,
			})
		}
		r.Dashboard.Rows = append(r.Dashboard.Rows, cells)
	}
	return r
}

// selection marks what the project uses: configured metric classes plus
// the meta metrics, configured sources, the explicit requirements plus the
// default requirements of the configured domain objects.
func selection(cfg *config.Config, catalog quality.Catalog) quality.Selection {
	var classes []string
	for _, s := range cfg.Sections {
		for _, m := range s.Metrics {
			classes = append(classes, m.Class)
		}
	}
	ids := quality.MetaHistoryIDs
	classes = append(classes, ids.Green, ids.Red, ids.Yellow, ids.Grey, ids.Missing)

	requirements := append([]string(nil), cfg.Requirements...)
	for _, d := range catalog.DomainObjectClasses {
		for _, want := range cfg.DomainObjects {
			if d.ID == want {
				requirements = append(requirements, d.DefaultRequirements...)
			}
		}
	}

	return quality.Selection{
		MetricClasses:       quality.IncludedIn(classes...),
		SourceClasses:       quality.IncludedIn(cfg.Sources.SourceClassIDs()...),
		Requirements:        quality.IncludedIn(requirements...),
		DomainObjectClasses: quality.IncludedIn(cfg.DomainObjects...),
	}
}

// latestVersion returns the configured latest version or, failing that,
// the tag of the latest GitHub release. Lookup failures yield "".
func latestVersion(ctx context.Context, cfg *config.Config) string {
	if cfg.LatestVersion != "" {
		return cfg.LatestVersion
	}
	gh := cfg.Sources.GitHub
	if gh == nil || gh.Owner == "" || gh.Repo == "" {
		return ""
	}
	tag, err := newGitHubTracker(gh.Token).LatestRelease(ctx, gh.Owner, gh.Repo)
	if err != nil {
		slog.Warn("Couldn't determine latest release", "owner", gh.Owner, "repo", gh.Repo, "error", err)
		return ""
	}
	return tag
}
