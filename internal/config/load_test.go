package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qualitydash/internal/query"
)

const sampleYAML = `
title: Kwaliteitsrapport Webshop
project: SHOP
history_file: out/history.json
sources:
  jira:
    url: https://jira.example.org
    username: bot
    password: ${JIRA_PASSWORD}
    backlog:
      nr_user_stories: 10812
  zap:
    reports: [https://ci.example.org/zap.html]
sections:
  - id: PD
    title: Product
    metrics:
      - class: OpenIssues
        queries: ['project = {project} AND resolution = Unresolved', 4711]
        target: 5
dashboard:
  headers: [{label: Product, colspan: 2}]
  rows:
    - [{section: PD, color: lightsteelblue}]
`

const sampleTOML = `
title = "Kwaliteitsrapport Webshop"
project = "SHOP"

[sources.jira]
url = "https://jira.example.org"
password = "${JIRA_PASSWORD}"

[[sections]]
id = "PD"
title = "Product"

  [[sections.metrics]]
  class = "OpenIssues"
  queries = ["project = {project} AND resolution = Unresolved", 4711]
  target = 5.0
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv("JIRA_PASSWORD", "s3cret")
	path := writeFile(t, t.TempDir(), ".qualitydash.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Kwaliteitsrapport Webshop", cfg.Title)
	assert.Equal(t, "SHOP", cfg.Project)
	require.NotNil(t, cfg.Sources.Jira)
	assert.Equal(t, "s3cret", cfg.Sources.Jira.Password)
	assert.Equal(t, query.Templates{query.FilterID("10812")}, cfg.Sources.Jira.Backlog["nr_user_stories"])
	assert.Nil(t, cfg.Sources.GitHub)

	require.Len(t, cfg.Sections, 1)
	m := cfg.Sections[0].Metrics[0]
	assert.Equal(t, query.Templates{
		query.QueryTemplate("project = {project} AND resolution = Unresolved"),
		query.FilterID("4711"),
	}, m.Queries)
	require.NotNil(t, m.Target)
	assert.Equal(t, 5.0, *m.Target)

	assert.Equal(t, 2, cfg.Dashboard.Headers[0].ColSpan)
	assert.Equal(t, "PD", cfg.Dashboard.Rows[0][0].Section)
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv("JIRA_PASSWORD", "s3cret")
	path := writeFile(t, t.TempDir(), ".qualitydash.toml", sampleTOML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Sources.Jira.Password)
	require.Len(t, cfg.Sections, 1)
	assert.Equal(t, query.Templates{
		query.QueryTemplate("project = {project} AND resolution = Unresolved"),
		query.FilterID("4711"),
	}, cfg.Sections[0].Metrics[0].Queries)
}

func TestLoad_UnknownKeys(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "a.yaml", "titel: typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "titel")

	_, err = Load(writeFile(t, dir, "b.toml", "titel = \"typo\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: titel")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".qualitydash.yaml"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, t.TempDir(), ".qualitydash.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	_, err := Find(dir)
	assert.True(t, errors.Is(err, ErrNotFound))

	writeFile(t, dir, ".qualitydash.toml", "")
	path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".qualitydash.toml"), path)

	writeFile(t, dir, ".qualitydash.yaml", "")
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".qualitydash.yaml"), path, "yaml is preferred")
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Setenv("JIRA_PASSWORD", "x")
	cfg, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))

	back, err := Parse(buf.Bytes(), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
