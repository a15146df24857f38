// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/davetashner/qualitydash/internal/history"
	"github.com/davetashner/qualitydash/internal/quality"
	"github.com/davetashner/qualitydash/internal/testable"
)

// FS is the file system used by directory formatters.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

func init() {
	RegisterFormatter(NewHTMLFormatter("0", "0"))
}

//go:embed fragments/prefix.html fragments/section.html
var fragmentFS embed.FS

//go:embed fragments/postfix.html
var postfixHTML string

// reportDateLayout is the date shown in the report header.
const reportDateLayout = "02-01-06 15:04"

var (
	fragmentsOnce sync.Once
	fragments     *template.Template
)

// loadFragments parses the embedded fragments. A broken fragment is a
// build defect, so parsing panics.
func loadFragments() *template.Template {
	fragmentsOnce.Do(func() {
		fragments = template.Must(template.New("fragments").
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			ParseFS(fragmentFS, "fragments/*.html"))
	})
	return fragments
}

// HTMLFormatter renders the report as a single HTML page composed of a
// prefix, one fragment per section, and a postfix.
type HTMLFormatter struct {
	latestVersion  string
	currentVersion string
}

// Compile-time interface checks.
var (
	_ Formatter          = (*HTMLFormatter)(nil)
	_ DirectoryFormatter = (*HTMLFormatter)(nil)
)

// NewHTMLFormatter returns an HTMLFormatter. The versions drive the "new
// version available" text in the report header.
func NewHTMLFormatter(latestVersion, currentVersion string) *HTMLFormatter {
	return &HTMLFormatter{latestVersion: latestVersion, currentVersion: currentVersion}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

// Format writes the complete page to w.
func (h *HTMLFormatter) Format(report *quality.Report, w io.Writer) error {
	prefix, err := h.Prefix(report)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, s := range report.Sections {
		section, err := h.Section(report, s)
		if err != nil {
			return err
		}
		sb.WriteString(section)
	}
	sb.WriteString(h.Postfix())

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// FormatDir writes the page to dir/index.html.
func (h *HTMLFormatter) FormatDir(report *quality.Report, dir string) error {
	if err := FS.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := FS.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("create index.html: %w", err)
	}
	if err := h.Format(report, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index.html: %w", err)
	}
	return nil
}

// Prefix renders the page header: navigation, dashboard, catalog tables,
// and the metric and history data for the client-side charts.
func (h *HTMLFormatter) Prefix(report *quality.Report) (string, error) {
	metricClasses, err := metricClassesTable(report)
	if err != nil {
		return "", err
	}
	trend, err := historyData(report)
	if err != nil {
		return "", err
	}

	params := map[string]any{
		"title":                 report.Title,
		"date":                  report.Date.Format(reportDateLayout),
		"current_version":       h.currentVersion,
		"new_version_available": h.newReleaseText(),
		"section_menu":          sectionMenu(report),
		"dashboard":             NewDashboardFormatter().Render(report),
		"domain_object_classes": domainObjectClassesTable(report),
		"metric_classes":        metricClasses,
		"metric_sources":        metricSourcesTable(report),
		"requirements":          requirementsTable(report),
		"project_resources":     projectResources(report),
		"history":               trend,
		"metrics":               metricsData(report),
	}
	return execute("prefix.html", params)
}

// Section renders the header fragment of one section.
func (h *HTMLFormatter) Section(_ *quality.Report, section *quality.Section) (string, error) {
	extra := ""
	if section.ID == quality.MetaSectionID {
		extra = "<div id=\"meta_metrics_history_relative_graph\"></div>\n" +
			"<div id=\"meta_metrics_history_absolute_graph\"></div>"
	}
	params := map[string]any{
		"title":    section.Title,
		"id":       section.ID,
		"subtitle": formatSubtitle(section.Subtitle),
		"extra":    extra,
	}
	return execute("section.html", params)
}

// Metric renders one metric as a row of the client-side metrics table.
func (h *HTMLFormatter) Metric(m *quality.Metric) string {
	return metricRow(m)
}

// Postfix returns the page footer.
func (h *HTMLFormatter) Postfix() string {
	return postfixHTML
}

// newReleaseText compares the version strings lexicographically, so "10"
// sorts before "9".
func (h *HTMLFormatter) newReleaseText() string {
	if h.latestVersion > h.currentVersion {
		return " Versie " + h.latestVersion + " is beschikbaar."
	}
	return ""
}

func execute(name string, params map[string]any) (string, error) {
	var sb strings.Builder
	if err := loadFragments().ExecuteTemplate(&sb, name, params); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

func historyData(report *quality.Report) (string, error) {
	meta := report.MetaSection()
	if meta == nil {
		return "[]", nil
	}
	rows, err := history.Encode(meta.History, quality.MetaHistoryIDs)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return history.JS(rows), nil
}
