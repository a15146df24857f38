package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"report", "measure", "sources", "validate", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "text", rootCmd.PersistentFlags().Lookup("log-format").DefValue)
}

func TestVersionCmd(t *testing.T) {
	resetFlags()
	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "qualitydash dev\n", stdout.String())
}

func TestExitError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "qualitydash: some metrics could not be measured", exitError(ExitPartialFailure, "").Error())
	assert.Equal(t, "qualitydash: no report written", exitError(ExitTotalFailure, "").Error())
	assert.Equal(t, "qualitydash: error", exitError(ExitInvalidArgs, "").Error())
	assert.Equal(t, 3, exitError(ExitTotalFailure, "boom %d", 1).ExitCode())
}

func TestValidateCmd(t *testing.T) {
	dir := isolate(t)
	writeProject(t, dir, newSourceServer(t))

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"validate"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "valid: 2 sections, 3 metrics, 3 sources\n", stdout.String())
}

func TestValidateCmd_DumpRedacts(t *testing.T) {
	dir := isolate(t)
	writeProject(t, dir, newSourceServer(t))

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"validate", "--dump"})
	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "title: Testproject")
	assert.Contains(t, out, "history_file: history.json")
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "hunter2-secret")
}

func TestValidateCmd_ReportsAllErrors(t *testing.T) {
	dir := isolate(t)
	writeTestFile(t, dir, "project.toml", `
concurrency = -1

[[sections]]
id = "MM"
title = ""
`)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"validate", "-c", "project.toml"})
	err := cmd.Execute()

	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitInvalidArgs, ece.ExitCode())
	assert.Contains(t, err.Error(), "concurrency")
	assert.Contains(t, err.Error(), "MM")
}

func TestConfigGetCmd(t *testing.T) {
	dir := isolate(t)
	srv := newSourceServer(t)
	writeProject(t, dir, srv)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"config", "get", "sections.1.title"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Build\n", stdout.String())

	stdout.Reset()
	cmd.SetArgs([]string{"config", "get", "sources.jira"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "url: "+srv.URL+"/jira")
	assert.Contains(t, stdout.String(), "password: [REDACTED]")
}

func TestConfigGetCmd_UnknownKey(t *testing.T) {
	dir := isolate(t)
	writeProject(t, dir, newSourceServer(t))

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"config", "get", "no.such.key"})
	assert.Error(t, cmd.Execute())
}

func TestConfigListCmd_AnnotatesSource(t *testing.T) {
	dir := isolate(t)
	writeProject(t, dir, newSourceServer(t))
	color.NoColor = true

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"config", "list"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(stdout.String(), "\n")
	assert.Contains(t, lines, "title = Testproject (project)")
	assert.Contains(t, lines, "history_file = history.json (default)")
	assert.Contains(t, lines, "sources.jira.password = [REDACTED] (project)")
}

func TestSourcesCmd(t *testing.T) {
	dir := isolate(t)
	srv := newSourceServer(t)
	writeProject(t, dir, srv)
	color.NoColor = true

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"sources"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Bron")
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "Jenkins "):
			assert.Contains(t, line, " ja ")
			assert.Contains(t, line, srv.URL+"/jenkins")
		case strings.HasPrefix(line, "Checkmarx "):
			assert.Contains(t, line, " nee")
		}
	}
}

func TestSourcesCmd_WithoutProject(t *testing.T) {
	isolate(t)
	color.NoColor = true

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"sources"})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, stdout.String(), " ja ")
	assert.Contains(t, stdout.String(), "ZAPScanReport")
}

func TestMeasureCmd(t *testing.T) {
	dir := isolate(t)
	writeProject(t, dir, newSourceServer(t))
	color.NoColor = true

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"measure", "-q"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Product (PD)")
	assert.Contains(t, out, "Build (CI)")
	assert.Contains(t, out, "Meta metrieken (MM)")
	assert.Contains(t, out, "Het aantal openstaande issues is 3.")
}
