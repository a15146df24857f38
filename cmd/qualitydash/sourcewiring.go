// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/measure"
	"github.com/davetashner/qualitydash/internal/metricsource"
	"github.com/davetashner/qualitydash/internal/quality"
	"github.com/davetashner/qualitydash/internal/query"
	"github.com/davetashner/qualitydash/internal/redact"
)

// metricTexts are the measurement texts per metric class.
var metricTexts = map[string]string{
	"OpenIssues":                            "Het aantal openstaande issues is {value}.",
	"StoryPoints":                           "Het aantal storypoints is {value}.",
	"UserStoriesNotReviewedAndApproved":     "{value} user stories zijn niet gereviewd en goedgekeurd.",
	"UserStoriesWithTooFewLogicalTestCases": "{value} user stories hebben onvoldoende logische testgevallen.",
	"LogicalTestCasesNotReviewed":           "{value} logische testgevallen zijn niet gereviewd.",
	"LogicalTestCasesNotAutomated":          "{value} logische testgevallen zijn nog niet geautomatiseerd.",
	"ManualLogicalTestCases":                "{value} handmatige logische testgevallen zijn te lang niet uitgevoerd.",
	"HighRiskZAPScanAlertsMetric":           "Er zijn {value} ZAP Scan alerts met hoge risiconiveau.",
	"MediumRiskZAPScanAlertsMetric":         "Er zijn {value} ZAP Scan alerts met medium risiconiveau.",
	"HighRiskCheckmarxAlertsMetric":         "Er zijn {value} Checkmarx alerts met hoge risiconiveau.",
	"MediumRiskCheckmarxAlertsMetric":       "Er zijn {value} Checkmarx alerts met medium risiconiveau.",
	"FailingCIJobs":                         "{value} CI-jobs falen.",
	"UnusedCIJobs":                          "{value} CI-jobs zijn ongebruikt.",
	"DownMonitors":                          "{value} diensten zijn niet beschikbaar.",
}

// newGitHubTracker builds the GitHub tracker; tests replace it.
var newGitHubTracker = metricsource.NewGitHubTracker

// metricSources holds one adapter per configured source. A nil adapter
// means the source is not configured.
type metricSources struct {
	jira      *metricsource.Jira
	github    *metricsource.GitHubTracker
	backlog   *metricsource.Backlog
	zap       *metricsource.ZAPScanReport
	checkmarx *metricsource.Checkmarx
	jenkins   *metricsource.Jenkins
	monitor   *metricsource.Monitor

	zapReports        []string
	checkmarxProjects []string
}

// buildSources creates the adapters for the sources cfg configures.
func buildSources(cfg *config.Config) *metricSources {
	s := &metricSources{}
	src := cfg.Sources
	if c := src.Jira; c != nil {
		s.jira = metricsource.NewJira(c.URL, metricsource.NewClient(authOptions(c.Username, c.Password, c.Token)...))
		s.backlog = metricsource.NewBacklog(s.jira, cfg.Project, c.ExpectedLTCsField, c.Backlog)
	}
	if c := src.GitHub; c != nil {
		s.github = newGitHubTracker(c.Token)
	}
	if c := src.ZAP; c != nil {
		s.zap = metricsource.NewZAPScanReport(metricsource.NewOpener(metricsource.NewClient()))
		s.zapReports = c.Reports
	}
	if c := src.Checkmarx; c != nil {
		opts := append(authOptions(c.Username, c.Password, ""), metricsource.WithInsecureTLS())
		s.checkmarx = metricsource.NewCheckmarx(c.URL, metricsource.NewClient(opts...))
		s.checkmarxProjects = c.Projects
	}
	if c := src.Jenkins; c != nil {
		s.jenkins = metricsource.NewJenkins(c.URL, metricsource.NewClient(authOptions(c.Username, "", c.Token)...))
	}
	if c := src.Monitor; c != nil {
		s.monitor = metricsource.NewMonitor(c.URL, metricsource.NewClient(authOptions("", "", c.Token)...))
	}
	return s
}

// authOptions picks basic auth when a username is set, with the token as
// password if there is no password. A lone token is sent as bearer token.
func authOptions(username, password, token string) []metricsource.ClientOption {
	switch {
	case username != "" && password != "":
		return []metricsource.ClientOption{metricsource.WithBasicAuth(username, password)}
	case username != "" && token != "":
		return []metricsource.ClientOption{metricsource.WithBasicAuth(username, token)}
	case token != "":
		return []metricsource.ClientOption{metricsource.WithBearerToken(token)}
	default:
		return nil
	}
}

// registerSecrets keeps credentials written literally in config files out
// of logs and error messages.
func registerSecrets(cfg *config.Config) {
	src := cfg.Sources
	if c := src.Jira; c != nil {
		redact.Register(c.Password)
		redact.Register(c.Token)
	}
	if c := src.GitHub; c != nil {
		redact.Register(c.Token)
	}
	if c := src.Checkmarx; c != nil {
		redact.Register(c.Password)
	}
	if c := src.Jenkins; c != nil {
		redact.Register(c.Token)
	}
	if c := src.Monitor; c != nil {
		redact.Register(c.Token)
	}
}

// tracker returns the issue tracker a metric asks for: "jira", "github",
// or the first configured of the two when name is empty.
func (s *metricSources) tracker(name string) (metricsource.Tracker, string) {
	switch name {
	case config.TrackerJira:
		if s.jira != nil {
			return s.jira, "Jira"
		}
	case config.TrackerGitHub:
		if s.github != nil {
			return s.github, "GitHub"
		}
	case "":
		if s.jira != nil {
			return s.jira, "Jira"
		}
		if s.github != nil {
			return s.github, "GitHub"
		}
	}
	return nil, ""
}

// planSections turns the configured sections into measurement jobs.
// Metrics are numbered per section from 1.
func planSections(cfg *config.Config, s *metricSources, catalog quality.Catalog) []measure.Section {
	plan := make([]measure.Section, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		ms := measure.Section{ID: sec.ID, Title: sec.Title, Subtitle: sec.Subtitle}
		for i, m := range sec.Metrics {
			job := measure.Job{
				ID:            sec.ID + "-" + strconv.Itoa(i+1),
				StableID:      m.Class + sec.ID,
				Class:         m.Class,
				Text:          metricTexts[m.Class],
				Target:        m.Target,
				LowTarget:     m.LowTarget,
				TechnicalDebt: m.TechnicalDebt,
				Comment:       m.Comment,
				Version:       m.Version,
			}
			s.bind(&job, m, cfg.Project, catalog)
			ms.Jobs = append(ms.Jobs, job)
		}
		plan = append(plan, ms)
	}
	return plan
}

// bind sets the measure and url functions of job. A job whose source is
// not configured is marked MissingSource.
func (s *metricSources) bind(job *measure.Job, m config.MetricConfig, project string, catalog quality.Catalog) {
	days := m.Days
	if days == 0 {
		if class, ok := catalog.MetricClass(m.Class); ok {
			d, _ := class.Default("days")
			days = int(d)
		}
	}
	if m.Days > 0 {
		job.NormParams = map[string]any{"days": m.Days}
	}

	switch config.ClassSources[m.Class] {
	case config.SourceTracker:
		tracker, label := s.tracker(m.Source)
		if tracker == nil {
			job.MissingSource = true
			return
		}
		filter := metricsource.NewIssueFilter(tracker)
		qs := query.Resolve(m.Queries, project)
		if m.Class == "StoryPoints" {
			job.Measure = intMeasure(func(ctx context.Context) int { return filter.SumField(ctx, m.Field, qs...) })
		} else {
			job.Measure = intMeasure(func(ctx context.Context) int { return filter.CountIssues(ctx, qs...) })
		}
		job.URLs = func(ctx context.Context) map[string]string {
			return anchors("filter", filter.MetricSourceURLs(ctx, qs...))
		}
		job.URLLabel = label

	case config.SourceBacklog:
		if s.backlog == nil {
			job.MissingSource = true
			return
		}
		s.bindBacklog(job, m.Class, days)

	case config.SourceZAP:
		if s.zap == nil {
			job.MissingSource = true
			return
		}
		risk := riskOf(m.Class)
		job.Measure = intMeasure(func(ctx context.Context) int { return s.zap.Alerts(ctx, risk, s.zapReports...) })
		job.URLs = staticURLs(anchors("rapport", s.zapReports))
		job.URLLabel = "ZAP Scan"

	case config.SourceCheckmarx:
		if s.checkmarx == nil {
			job.MissingSource = true
			return
		}
		risk := riskOf(m.Class)
		job.Measure = intMeasure(func(ctx context.Context) int { return s.checkmarx.Alerts(ctx, risk, s.checkmarxProjects...) })
		job.URLs = staticURLs(map[string]string{"Checkmarx": s.checkmarx.URL()})

	case config.SourceJenkins:
		if s.jenkins == nil {
			job.MissingSource = true
			return
		}
		if m.Class == "FailingCIJobs" {
			job.Measure = intMeasure(func(ctx context.Context) int { return s.jenkins.FailingJobs(ctx, days) })
			job.URLs = func(ctx context.Context) map[string]string { return s.jenkins.FailingJobsURL(ctx, days) }
		} else {
			job.Measure = intMeasure(func(ctx context.Context) int { return s.jenkins.UnusedJobs(ctx, days) })
			job.URLs = func(ctx context.Context) map[string]string { return s.jenkins.UnusedJobsURL(ctx, days) }
		}
		job.URLLabel = "Jenkins"

	case config.SourceMonitor:
		if s.monitor == nil {
			job.MissingSource = true
			return
		}
		job.Measure = intMeasure(s.monitor.DownCount)
		job.URLs = staticURLs(map[string]string{"monitor": s.monitor.URL()})

	default:
		job.MissingSource = true
	}
}

// bindBacklog measures the backlog classes as the difference of two counts.
func (s *metricSources) bindBacklog(job *measure.Job, class string, days int) {
	b := s.backlog
	var key string
	switch class {
	case "UserStoriesNotReviewedAndApproved":
		key = metricsource.KeyApprovedUserStories
		job.Measure = difference(b.NrUserStories, b.ApprovedUserStories)
	case "UserStoriesWithTooFewLogicalTestCases":
		key = metricsource.KeyNrUserStoriesWithSufficientLTC
		job.Measure = difference(b.NrUserStories, b.NrUserStoriesWithSufficientLTCs)
	case "LogicalTestCasesNotReviewed":
		key = metricsource.KeyReviewedLTCs
		job.Measure = difference(b.NrLTCs, b.ReviewedLTCs)
	case "LogicalTestCasesNotAutomated":
		key = metricsource.KeyNrAutomatedLTCs
		job.Measure = difference(b.NrLTCsToBeAutomated, b.NrAutomatedLTCs)
	case "ManualLogicalTestCases":
		key = metricsource.KeyNrManualLTCsTooOld
		version := job.Version
		job.Measure = intMeasure(func(ctx context.Context) int {
			return b.NrManualLTCsTooOld(ctx, version, days)
		})
	default:
		job.MissingSource = true
		return
	}
	job.URLs = func(ctx context.Context) map[string]string {
		return anchors("filter", b.MetricSourceURLs(ctx, key))
	}
	job.URLLabel = "Jira"
}

func intMeasure(f func(context.Context) int) measure.MeasureFunc {
	return func(ctx context.Context) float64 { return float64(f(ctx)) }
}

// difference measures total minus part, Unknown if either is Unknown.
func difference(total, part func(context.Context) int) measure.MeasureFunc {
	return func(ctx context.Context) float64 {
		t := total(ctx)
		if t == metricsource.Unknown {
			return metricsource.Unknown
		}
		p := part(ctx)
		if p == metricsource.Unknown {
			return metricsource.Unknown
		}
		return float64(t - p)
	}
}

func riskOf(class string) metricsource.RiskLevel {
	switch class {
	case "HighRiskZAPScanAlertsMetric", "HighRiskCheckmarxAlertsMetric":
		return metricsource.RiskHigh
	default:
		return metricsource.RiskMedium
	}
}

func staticURLs(urls map[string]string) measure.URLFunc {
	return func(context.Context) map[string]string { return urls }
}

// anchors labels urls "name" when there is one, "name 1".."name N" otherwise.
func anchors(name string, urls []string) map[string]string {
	if len(urls) == 0 {
		return nil
	}
	out := make(map[string]string, len(urls))
	if len(urls) == 1 {
		out[name] = urls[0]
		return out
	}
	for i, u := range urls {
		out[fmt.Sprintf("%s %d", name, i+1)] = u
	}
	return out
}
