package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/metricsource"
	"github.com/davetashner/qualitydash/internal/quality"
	"github.com/davetashner/qualitydash/internal/query"
)

func TestAuthOptions(t *testing.T) {
	tests := []struct {
		name               string
		user, pass, token  string
		wantUser, wantPass string
		wantBearer         string
	}{
		{name: "basic", user: "jan", pass: "geheim", wantUser: "jan", wantPass: "geheim"},
		{name: "user_and_token", user: "jan", token: "api-token", wantUser: "jan", wantPass: "api-token"},
		{name: "bearer", token: "api-token", wantBearer: "Bearer api-token"},
		{name: "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, pass, _ := r.BasicAuth()
				assert.Equal(t, tt.wantUser, user)
				assert.Equal(t, tt.wantPass, pass)
				if tt.wantUser == "" {
					assert.Equal(t, tt.wantBearer, r.Header.Get("Authorization"))
				}
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			client := metricsource.NewClient(authOptions(tt.user, tt.pass, tt.token)...)
			var v map[string]any
			require.NoError(t, client.GetJSON(context.Background(), srv.URL, &v))
		})
	}
}

func TestPlanSections_NumbersAndMissingSources(t *testing.T) {
	cfg := &config.Config{
		Project: "TP",
		Sources: config.SourcesConfig{Monitor: &config.MonitorConfig{URL: "http://monitor"}},
		Sections: []config.SectionConfig{
			{ID: "PD", Title: "Product", Metrics: []config.MetricConfig{
				{Class: "OpenIssues", Queries: query.Of("q")},
				{Class: "UserStoriesNotReviewedAndApproved"},
			}},
			{ID: "EN", Title: "Omgeving", Metrics: []config.MetricConfig{
				{Class: "DownMonitors", Comment: "Alleen productie", Version: "1.2"},
				{Class: "UnusedCIJobs", Days: 30},
			}},
		},
	}
	plan := planSections(cfg, buildSources(cfg), quality.DefaultCatalog())
	require.Len(t, plan, 2)

	pd := plan[0].Jobs
	assert.Equal(t, "PD-1", pd[0].ID)
	assert.Equal(t, "OpenIssuesPD", pd[0].StableID)
	assert.True(t, pd[0].MissingSource, "no tracker configured")
	assert.Equal(t, "PD-2", pd[1].ID)
	assert.True(t, pd[1].MissingSource, "no backlog configured")

	en := plan[1].Jobs
	assert.False(t, en[0].MissingSource)
	assert.NotNil(t, en[0].Measure)
	assert.Equal(t, "Alleen productie", en[0].Comment)
	assert.Equal(t, "1.2", en[0].Version)
	assert.Equal(t, map[string]string{"monitor": "http://monitor"}, en[0].URLs(context.Background()))
	assert.True(t, en[1].MissingSource)
	assert.Equal(t, map[string]any{"days": 30}, en[1].NormParams)
}

func TestMetricSources_Tracker(t *testing.T) {
	cfg := &config.Config{Sources: config.SourcesConfig{
		Jira:   &config.JiraConfig{URL: "http://jira"},
		GitHub: &config.GitHubConfig{Owner: "acme", Repo: "qd"},
	}}
	s := buildSources(cfg)

	tr, label := s.tracker("")
	assert.Same(t, s.jira, tr)
	assert.Equal(t, "Jira", label)

	tr, label = s.tracker(config.TrackerGitHub)
	assert.Same(t, s.github, tr)
	assert.Equal(t, "GitHub", label)

	only := buildSources(&config.Config{Sources: config.SourcesConfig{GitHub: &config.GitHubConfig{}}})
	_, label = only.tracker("")
	assert.Equal(t, "GitHub", label)
	tr, _ = only.tracker(config.TrackerJira)
	assert.Nil(t, tr)
}

func TestDifference(t *testing.T) {
	n := func(v int) func(context.Context) int { return func(context.Context) int { return v } }
	ctx := context.Background()

	assert.Equal(t, 7.0, difference(n(10), n(3))(ctx))
	assert.Equal(t, float64(metricsource.Unknown), difference(n(metricsource.Unknown), n(3))(ctx))
	assert.Equal(t, float64(metricsource.Unknown), difference(n(10), n(metricsource.Unknown))(ctx))
}

func TestDifference_SkipsPartWhenTotalUnknown(t *testing.T) {
	called := false
	part := func(context.Context) int { called = true; return 1 }
	difference(func(context.Context) int { return metricsource.Unknown }, part)(context.Background())
	assert.False(t, called)
}

func TestAnchors(t *testing.T) {
	assert.Nil(t, anchors("filter", nil))
	assert.Equal(t, map[string]string{"filter": "u1"}, anchors("filter", []string{"u1"}))
	assert.Equal(t, map[string]string{"filter 1": "u1", "filter 2": "u2"}, anchors("filter", []string{"u1", "u2"}))
}

func TestRiskOf(t *testing.T) {
	assert.Equal(t, metricsource.RiskHigh, riskOf("HighRiskZAPScanAlertsMetric"))
	assert.Equal(t, metricsource.RiskHigh, riskOf("HighRiskCheckmarxAlertsMetric"))
	assert.Equal(t, metricsource.RiskMedium, riskOf("MediumRiskCheckmarxAlertsMetric"))
}

func TestMetricTexts_CoverEveryConfigurableClass(t *testing.T) {
	for class := range config.ClassSources {
		assert.Contains(t, metricTexts, class)
	}
}

func TestBindBacklog_Jira(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jql := r.URL.Query().Get("jql")
		total := 10
		if jql != `project = "TP" AND type = Story` {
			total = 4
		}
		_, _ = w.Write([]byte(`{"total": ` + strconv.Itoa(total) + `, "issues": []}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Project: "TP",
		Sources: config.SourcesConfig{Jira: &config.JiraConfig{URL: srv.URL}},
		Sections: []config.SectionConfig{{ID: "PD", Title: "Product", Metrics: []config.MetricConfig{
			{Class: "UserStoriesNotReviewedAndApproved"},
			{Class: "ManualLogicalTestCases"},
		}}},
	}
	plan := planSections(cfg, buildSources(cfg), quality.DefaultCatalog())
	jobs := plan[0].Jobs

	assert.Equal(t, 6.0, jobs[0].Measure(context.Background()))
	assert.Equal(t, "Jira", jobs[0].URLLabel)
	assert.Len(t, jobs[0].URLs(context.Background()), 1)
	assert.Equal(t, 4.0, jobs[1].Measure(context.Background()))
	assert.Nil(t, jobs[1].NormParams, "default days come from the class")
}
