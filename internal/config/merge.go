package config

// DefaultHistoryFile is the snapshot file used when history_file is unset,
// relative to the output directory.
const DefaultHistoryFile = "history.json"

// Merge layers the global config under the project config. Project values
// win; empty credentials and settings fall through to the global config.
// A source only the global config defines stays unconfigured.
func Merge(project, global *Config) *Config {
	result := *project
	if global == nil {
		global = &Config{}
	}

	if result.Concurrency == 0 {
		result.Concurrency = global.Concurrency
	}
	if result.CurrentVersion == "" {
		result.CurrentVersion = global.CurrentVersion
	}
	if result.HistoryFile == "" {
		result.HistoryFile = global.HistoryFile
	}
	if result.HistoryFile == "" {
		result.HistoryFile = DefaultHistoryFile
	}

	ps, gs := &result.Sources, global.Sources
	if ps.Jira != nil && gs.Jira != nil {
		jira := *ps.Jira
		fill(&jira.Username, gs.Jira.Username)
		fill(&jira.Password, gs.Jira.Password)
		fill(&jira.Token, gs.Jira.Token)
		fill(&jira.ExpectedLTCsField, gs.Jira.ExpectedLTCsField)
		ps.Jira = &jira
	}
	if ps.GitHub != nil && gs.GitHub != nil {
		gh := *ps.GitHub
		fill(&gh.Token, gs.GitHub.Token)
		ps.GitHub = &gh
	}
	if ps.Checkmarx != nil && gs.Checkmarx != nil {
		cx := *ps.Checkmarx
		fill(&cx.Username, gs.Checkmarx.Username)
		fill(&cx.Password, gs.Checkmarx.Password)
		ps.Checkmarx = &cx
	}
	if ps.Jenkins != nil && gs.Jenkins != nil {
		jenkins := *ps.Jenkins
		fill(&jenkins.Username, gs.Jenkins.Username)
		fill(&jenkins.Token, gs.Jenkins.Token)
		ps.Jenkins = &jenkins
	}
	if ps.Monitor != nil && gs.Monitor != nil {
		monitor := *ps.Monitor
		fill(&monitor.Token, gs.Monitor.Token)
		ps.Monitor = &monitor
	}
	return &result
}

func fill(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
