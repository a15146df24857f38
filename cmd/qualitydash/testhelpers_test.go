package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newTestCmd redirects the I/O of the shared root command.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores every flag of every command to its default value.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			sub.Flags().VisitAll(reset)
		}
	}
}

// isolate points the global config at an empty directory and runs the
// test from a fresh working directory.
func isolate(t *testing.T) string {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// writeTestFile creates a file (and any necessary parent directories) under dir.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// newSourceServer serves a Jira with three open issues, a Jenkins without
// jobs, and a monitor with one service down.
func newSourceServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/jira/rest/api/2/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total": 3, "issues": []}`))
	})
	mux.HandleFunc("/jenkins/api/json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": []}`))
	})
	mux.HandleFunc("/monitor", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"monitors": [{"name": "api", "status": "up"}, {"name": "db", "status": "down"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

const projectTemplate = `title: Testproject
project: TP
current_version: "1.0"
latest_version: "1.0"
resources:
  - name: Wiki
    url: https://wiki.example.com
sources:
  jira:
    url: SERVER/jira
    password: hunter2-secret
  jenkins:
    url: SERVER/jenkins
  monitor:
    url: SERVER/monitor
sections:
  - id: PD
    title: Product
    metrics:
      - class: OpenIssues
        queries: ["project = {project} AND status = Open"]
  - id: CI
    title: Build
    metrics:
      - class: FailingCIJobs
      - class: DownMonitors
dashboard:
  headers:
    - label: Product
    - label: Build
  rows:
    - - section: PD
      - section: CI
`

// writeProject writes a project config using srv as metric source host.
func writeProject(t *testing.T, dir string, srv *httptest.Server) string {
	t.Helper()
	return writeTestFile(t, dir, ".qualitydash.yaml", strings.ReplaceAll(projectTemplate, "SERVER", srv.URL))
}
