// Package config handles .qualitydash.yaml and .qualitydash.toml project
// definition files.
package config

import (
	"errors"

	"github.com/davetashner/qualitydash/internal/query"
)

// FileNames are the project config file names looked up in a directory,
// in order of preference.
var FileNames = []string{".qualitydash.yaml", ".qualitydash.yml", ".qualitydash.toml"}

// ErrNotFound is returned when no project config file exists.
var ErrNotFound = errors.New("config file not found")

// Config represents a project definition: what to measure, where the
// metric sources live, and how the dashboard is laid out.
type Config struct {
	Title          string `yaml:"title,omitempty" toml:"title,omitempty"`
	Project        string `yaml:"project,omitempty" toml:"project,omitempty"`
	CurrentVersion string `yaml:"current_version,omitempty" toml:"current_version,omitempty"`
	LatestVersion  string `yaml:"latest_version,omitempty" toml:"latest_version,omitempty"`
	HistoryFile    string `yaml:"history_file,omitempty" toml:"history_file,omitempty"`
	Concurrency    int    `yaml:"concurrency,omitempty" toml:"concurrency,omitempty"`

	Resources []ResourceConfig `yaml:"resources,omitempty" toml:"resources,omitempty"`
	Sources   SourcesConfig    `yaml:"sources,omitempty" toml:"sources,omitempty"`
	Sections  []SectionConfig  `yaml:"sections,omitempty" toml:"sections,omitempty"`
	Dashboard DashboardConfig  `yaml:"dashboard,omitempty" toml:"dashboard,omitempty"`

	// DomainObjects lists the domain object classes this report covers;
	// their default requirements are included in the help tables.
	DomainObjects []string `yaml:"domain_objects,omitempty" toml:"domain_objects,omitempty"`
	Requirements  []string `yaml:"requirements,omitempty" toml:"requirements,omitempty"`
}

// ResourceConfig is a named project resource link.
type ResourceConfig struct {
	Name string `yaml:"name" toml:"name"`
	URL  string `yaml:"url,omitempty" toml:"url,omitempty"`
}

// SourcesConfig configures the metric sources. A nil entry means the
// source is not configured.
type SourcesConfig struct {
	Jira      *JiraConfig      `yaml:"jira,omitempty" toml:"jira,omitempty"`
	GitHub    *GitHubConfig    `yaml:"github,omitempty" toml:"github,omitempty"`
	ZAP       *ZAPConfig       `yaml:"zap,omitempty" toml:"zap,omitempty"`
	Checkmarx *CheckmarxConfig `yaml:"checkmarx,omitempty" toml:"checkmarx,omitempty"`
	Jenkins   *JenkinsConfig   `yaml:"jenkins,omitempty" toml:"jenkins,omitempty"`
	Monitor   *MonitorConfig   `yaml:"monitor,omitempty" toml:"monitor,omitempty"`
}

// JiraConfig configures the Jira issue tracker and backlog.
type JiraConfig struct {
	URL      string `yaml:"url" toml:"url"`
	Username string `yaml:"username,omitempty" toml:"username,omitempty"`
	Password string `yaml:"password,omitempty" toml:"password,omitempty"`
	Token    string `yaml:"token,omitempty" toml:"token,omitempty"`

	// ExpectedLTCsField is the label of the custom field holding the
	// expected number of logical test cases of a user story.
	ExpectedLTCsField string `yaml:"expected_ltcs_field,omitempty" toml:"expected_ltcs_field,omitempty"`

	// Backlog overrides the default backlog queries per logical key.
	Backlog map[string]query.Templates `yaml:"backlog,omitempty" toml:"backlog,omitempty"`
}

// GitHubConfig configures the GitHub issue tracker and release lookup.
type GitHubConfig struct {
	Token string `yaml:"token,omitempty" toml:"token,omitempty"`
	Owner string `yaml:"owner,omitempty" toml:"owner,omitempty"`
	Repo  string `yaml:"repo,omitempty" toml:"repo,omitempty"`
}

// ZAPConfig lists the ZAP scan report locations (http(s) or file URLs).
type ZAPConfig struct {
	Reports []string `yaml:"reports" toml:"reports"`
}

// CheckmarxConfig configures the Checkmarx OData API.
type CheckmarxConfig struct {
	URL      string   `yaml:"url" toml:"url"`
	Username string   `yaml:"username,omitempty" toml:"username,omitempty"`
	Password string   `yaml:"password,omitempty" toml:"password,omitempty"`
	Projects []string `yaml:"projects" toml:"projects"`
}

// JenkinsConfig configures the Jenkins CI server.
type JenkinsConfig struct {
	URL      string `yaml:"url" toml:"url"`
	Username string `yaml:"username,omitempty" toml:"username,omitempty"`
	Token    string `yaml:"token,omitempty" toml:"token,omitempty"`
}

// MonitorConfig configures the availability monitor status API.
type MonitorConfig struct {
	URL   string `yaml:"url" toml:"url"`
	Token string `yaml:"token,omitempty" toml:"token,omitempty"`
}

// SectionConfig is one report section and its metrics.
type SectionConfig struct {
	ID       string         `yaml:"id" toml:"id"`
	Title    string         `yaml:"title" toml:"title"`
	Subtitle string         `yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Metrics  []MetricConfig `yaml:"metrics,omitempty" toml:"metrics,omitempty"`
}

// MetricConfig is one metric of a section.
type MetricConfig struct {
	Class string `yaml:"class" toml:"class"`

	// Source picks the tracker for issue metrics: "jira" (default when
	// configured) or "github".
	Source  string          `yaml:"source,omitempty" toml:"source,omitempty"`
	Queries query.Templates `yaml:"queries,omitempty" toml:"queries,omitempty"`
	Field   string          `yaml:"field,omitempty" toml:"field,omitempty"`
	Days    int             `yaml:"days,omitempty" toml:"days,omitempty"`

	Target        *float64 `yaml:"target,omitempty" toml:"target,omitempty"`
	LowTarget     *float64 `yaml:"low_target,omitempty" toml:"low_target,omitempty"`
	TechnicalDebt bool     `yaml:"technical_debt,omitempty" toml:"technical_debt,omitempty"`
	Comment       string   `yaml:"comment,omitempty" toml:"comment,omitempty"`
	Version       string   `yaml:"version,omitempty" toml:"version,omitempty"`
}

// DashboardConfig is the dashboard grid layout.
type DashboardConfig struct {
	Headers []HeaderConfig `yaml:"headers,omitempty" toml:"headers,omitempty"`
	Rows    [][]CellConfig `yaml:"rows,omitempty" toml:"rows,omitempty"`
}

// HeaderConfig is a dashboard header cell.
type HeaderConfig struct {
	Label   string `yaml:"label" toml:"label"`
	ColSpan int    `yaml:"colspan,omitempty" toml:"colspan,omitempty"`
}

// CellConfig is a dashboard body cell referring to a section id.
type CellConfig struct {
	Section string `yaml:"section" toml:"section"`
	Color   string `yaml:"color,omitempty" toml:"color,omitempty"`
	ColSpan int    `yaml:"colspan,omitempty" toml:"colspan,omitempty"`
	RowSpan int    `yaml:"rowspan,omitempty" toml:"rowspan,omitempty"`
}
