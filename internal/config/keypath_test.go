package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue(t *testing.T) {
	cfg := validConfig()

	v, err := GetValue(cfg, "title")
	require.NoError(t, err)
	assert.Equal(t, "Rapport", v)

	v, err = GetValue(cfg, "sections.0.metrics.0.target")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = GetValue(cfg, "sources.jira")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"url": "https://jira.example.org"}, v)

	_, err = GetValue(cfg, "sections.9")
	assert.ErrorContains(t, err, "not an index")

	_, err = GetValue(cfg, "title.more")
	assert.ErrorContains(t, err, "scalar")

	_, err = GetValue(cfg, "nope")
	assert.ErrorContains(t, err, `key "nope" not found`)
}

func TestFlatten(t *testing.T) {
	flat, err := Flatten(validConfig())
	require.NoError(t, err)

	assert.Equal(t, "Rapport", flat["title"])
	assert.Equal(t, "shop", flat["sources.checkmarx.projects.0"])
	assert.Equal(t, "OpenIssues", flat["sections.0.metrics.0.class"])
	assert.Equal(t, "project = {project}", flat["sections.0.metrics.0.queries.0"])
	assert.Equal(t, "PD", flat["dashboard.rows.0.0.section"])
}
