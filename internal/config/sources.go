// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package config

// Source kinds a metric can be measured with.
const (
	SourceTracker   = "tracker" // jira or github, see MetricConfig.Source
	SourceBacklog   = "backlog" // jira only
	SourceZAP       = "zap"
	SourceCheckmarx = "checkmarx"
	SourceJenkins   = "jenkins"
	SourceMonitor   = "monitor"
)

// Tracker names accepted in MetricConfig.Source.
const (
	TrackerJira   = "jira"
	TrackerGitHub = "github"
)

// ClassSources maps each configurable metric class to the kind of source
// it is measured with. Meta metric classes are computed and absent.
var ClassSources = map[string]string{
	"OpenIssues":                            SourceTracker,
	"StoryPoints":                           SourceTracker,
	"UserStoriesNotReviewedAndApproved":     SourceBacklog,
	"UserStoriesWithTooFewLogicalTestCases": SourceBacklog,
	"LogicalTestCasesNotReviewed":           SourceBacklog,
	"LogicalTestCasesNotAutomated":          SourceBacklog,
	"ManualLogicalTestCases":                SourceBacklog,
	"HighRiskZAPScanAlertsMetric":           SourceZAP,
	"MediumRiskZAPScanAlertsMetric":         SourceZAP,
	"HighRiskCheckmarxAlertsMetric":         SourceCheckmarx,
	"MediumRiskCheckmarxAlertsMetric":       SourceCheckmarx,
	"FailingCIJobs":                         SourceJenkins,
	"UnusedCIJobs":                          SourceJenkins,
	"DownMonitors":                          SourceMonitor,
}

// SourceClassIDs maps a configured source to its catalog source class ids.
func (s SourcesConfig) SourceClassIDs() []string {
	var ids []string
	if s.Jira != nil {
		ids = append(ids, "Jira", "JiraFilter", "JiraBacklog")
	}
	if s.GitHub != nil {
		ids = append(ids, "GitHubIssues")
	}
	if s.ZAP != nil {
		ids = append(ids, "ZAPScanReport")
	}
	if s.Checkmarx != nil {
		ids = append(ids, "Checkmarx")
	}
	if s.Jenkins != nil {
		ids = append(ids, "Jenkins")
	}
	if s.Monitor != nil {
		ids = append(ids, "Monitor")
	}
	return ids
}

// Instances maps catalog source class ids to the configured instance urls.
func (s SourcesConfig) Instances() map[string][]string {
	out := make(map[string][]string)
	if s.Jira != nil {
		out["Jira"] = []string{s.Jira.URL}
		out["JiraBacklog"] = []string{s.Jira.URL}
	}
	if s.GitHub != nil && s.GitHub.Owner != "" && s.GitHub.Repo != "" {
		out["GitHubIssues"] = []string{"https://github.com/" + s.GitHub.Owner + "/" + s.GitHub.Repo + "/issues"}
	}
	if s.ZAP != nil {
		out["ZAPScanReport"] = append([]string(nil), s.ZAP.Reports...)
	}
	if s.Checkmarx != nil {
		out["Checkmarx"] = []string{s.Checkmarx.URL}
	}
	if s.Jenkins != nil {
		out["Jenkins"] = []string{s.Jenkins.URL}
	}
	if s.Monitor != nil {
		out["Monitor"] = []string{s.Monitor.URL}
	}
	return out
}
