package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/davetashner/qualitydash/internal/metricsource"
	"github.com/davetashner/qualitydash/internal/quality"
)

var sectionIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// Validate checks all fields in the config against the catalog and
// returns all errors at once.
func Validate(cfg *Config, catalog quality.Catalog) error {
	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if cfg.Concurrency < 0 {
		add("concurrency: must be non-negative, got %d", cfg.Concurrency)
	}

	errs = append(errs, validateSources(cfg.Sources)...)

	sections := make(map[string]bool, len(cfg.Sections))
	for i, s := range cfg.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		switch {
		case !sectionIDPattern.MatchString(s.ID):
			add("%s.id: must be upper case letters and digits, got %q", prefix, s.ID)
		case s.ID == quality.MetaSectionID:
			add("%s.id: %s is reserved for the meta metrics", prefix, quality.MetaSectionID)
		case sections[s.ID]:
			add("%s.id: duplicate section id %q", prefix, s.ID)
		}
		sections[s.ID] = true
		if strings.TrimSpace(s.Title) == "" {
			add("%s.title: must not be empty", prefix)
		}
		for j, m := range s.Metrics {
			errs = append(errs, validateMetric(fmt.Sprintf("%s.metrics[%d]", prefix, j), m, catalog)...)
		}
	}

	for i, h := range cfg.Dashboard.Headers {
		if h.ColSpan < 0 {
			add("dashboard.headers[%d].colspan: must be non-negative, got %d", i, h.ColSpan)
		}
	}
	for i, row := range cfg.Dashboard.Rows {
		for j, c := range row {
			prefix := fmt.Sprintf("dashboard.rows[%d][%d]", i, j)
			if c.ColSpan < 0 || c.RowSpan < 0 {
				add("%s: spans must be non-negative, got colspan %d rowspan %d", prefix, c.ColSpan, c.RowSpan)
			}
		}
	}

	for _, id := range cfg.DomainObjects {
		if !hasDomainObject(catalog, id) {
			add("domain_objects: unknown domain object %q", id)
		}
	}
	for _, id := range cfg.Requirements {
		if _, ok := catalog.Requirement(id); !ok {
			add("requirements: unknown requirement %q", id)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateMetric(prefix string, m MetricConfig, catalog quality.Catalog) []string {
	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(prefix+"."+format, args...))
	}

	if _, ok := catalog.MetricClass(m.Class); !ok {
		add("class: unknown metric class %q", m.Class)
		return errs
	}
	kind, ok := ClassSources[m.Class]
	if !ok {
		add("class: %s is computed and cannot be configured", m.Class)
		return errs
	}

	switch m.Source {
	case "", TrackerJira:
	case TrackerGitHub:
		if kind != SourceTracker {
			add("source: %s cannot be measured with github", m.Class)
		}
	default:
		add("source: unknown tracker %q (must be jira or github)", m.Source)
	}

	if kind == SourceTracker && len(m.Queries) == 0 {
		add("queries: %s needs at least one query", m.Class)
	}
	if m.Class == "StoryPoints" && m.Field == "" {
		add("field: StoryPoints needs the story points field")
	}
	if m.Days < 0 {
		add("days: must be non-negative, got %d", m.Days)
	}
	if m.Target != nil && m.LowTarget != nil {
		mc, _ := catalog.MetricClass(m.Class)
		if mc.HigherIsBetter && *m.LowTarget > *m.Target {
			add("low_target: must not exceed target for %s", m.Class)
		}
		if !mc.HigherIsBetter && *m.LowTarget < *m.Target {
			add("low_target: must not be below target for %s", m.Class)
		}
	}
	return errs
}

func validateSources(s SourcesConfig) []string {
	var errs []string
	checkURL := func(field, raw string) {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" && u.Scheme != "file" {
			errs = append(errs, fmt.Sprintf("%s: invalid url %q", field, raw))
		}
	}

	if s.Jira != nil {
		checkURL("sources.jira.url", s.Jira.URL)
		defaults := metricsource.DefaultBacklogQueries()
		for key := range s.Jira.Backlog {
			if _, ok := defaults[key]; !ok {
				errs = append(errs, fmt.Sprintf("sources.jira.backlog.%s: unknown backlog query", key))
			}
		}
	}
	if s.GitHub != nil && (s.GitHub.Owner == "") != (s.GitHub.Repo == "") {
		errs = append(errs, "sources.github: owner and repo must be set together")
	}
	if s.ZAP != nil {
		if len(s.ZAP.Reports) == 0 {
			errs = append(errs, "sources.zap.reports: must list at least one report")
		}
		for i, r := range s.ZAP.Reports {
			checkURL(fmt.Sprintf("sources.zap.reports[%d]", i), r)
		}
	}
	if s.Checkmarx != nil {
		checkURL("sources.checkmarx.url", s.Checkmarx.URL)
		if len(s.Checkmarx.Projects) == 0 {
			errs = append(errs, "sources.checkmarx.projects: must list at least one project")
		}
	}
	if s.Jenkins != nil {
		checkURL("sources.jenkins.url", s.Jenkins.URL)
	}
	if s.Monitor != nil {
		checkURL("sources.monitor.url", s.Monitor.URL)
	}
	return errs
}

func hasDomainObject(catalog quality.Catalog, id string) bool {
	for _, d := range catalog.DomainObjectClasses {
		if d.ID == id {
			return true
		}
	}
	return false
}
