// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/davetashner/qualitydash/internal/quality"
)

const (
	checkIcon  = `<span class="glyphicon glyphicon-ok" aria-hidden="true"></span>`
	tableStart = "<table class=\"table table-striped first-col-centered\">\n  <tr><th>In dit rapport?</th>"
	tableEnd   = "</table>"
)

// sectionMenu returns one menu item per title, or one per section labelled
// "title subtitle" when several sections share a title. Titles keep the
// order in which they are first encountered.
func sectionMenu(report *quality.Report) string {
	var titles []string
	byTitle := map[string][]*quality.Section{}
	for _, s := range report.Sections {
		if _, seen := byTitle[s.Title]; !seen {
			titles = append(titles, s.Title)
		}
		byTitle[s.Title] = append(byTitle[s.Title], s)
	}

	var items []string
	for _, title := range titles {
		sections := byTitle[title]
		if len(sections) == 1 {
			items = append(items, menuItem(sections[0].ID, title))
			continue
		}
		for _, s := range sections {
			items = append(items, menuItem(s.ID, s.Title+" "+s.Subtitle))
		}
	}
	return strings.Join(items, "\n")
}

func menuItem(sectionID, label string) string {
	return fmt.Sprintf(`<li><a class="link_section_%[1]s" href="#section_%[1]s">%[2]s</a></li>`, sectionID, label)
}

// formatSubtitle wraps a non-empty subtitle in a small span.
func formatSubtitle(subtitle string) string {
	if subtitle == "" {
		return ""
	}
	return " <small>" + subtitle + "</small>"
}

func icon(included bool) string {
	if included {
		return checkIcon
	}
	return ""
}

func metricClassesTable(report *quality.Report) (string, error) {
	rows := []string{tableStart + "<th>Metriek (<code><small>Identifier</small></code>)</th><th>Norm</th></tr>"}
	for _, mc := range report.Catalog.MetricClasses {
		norm, err := mc.Norm()
		if err != nil {
			slog.Error("Metric class had faulty norm template", "class", mc.ID, "error", err)
			return "", err
		}
		rows = append(rows, fmt.Sprintf("  <tr><td>%s</td><td>%s (<code><small>%s</small></code>)</td><td>%s</td></tr>",
			icon(quality.Includes(report.Included.MetricClasses, mc.ID)), mc.Name, mc.ID, norm))
	}
	rows = append(rows, tableEnd)
	return strings.Join(rows, "\n"), nil
}

func metricSourcesTable(report *quality.Report) string {
	rows := []string{tableStart + "<th>Metriekbron (<code><small>Identifier</small></code>)</th><th>Instanties</th></tr>"}
	for _, sc := range report.Catalog.SourceClasses {
		var anchors []string
		for _, u := range report.SourceInstances[sc.ID] {
			if u != "" {
				anchors = append(anchors, fmt.Sprintf(`<a href="%[1]s" target="_blank">%[1]s</a>`, u))
			}
		}
		rows = append(rows, fmt.Sprintf("  <tr><td>%s</td><td>%s (<code><small>%s</small></code>)</td><td>%s</td></tr>",
			icon(quality.Includes(report.Included.SourceClasses, sc.ID)), sc.Name, sc.ID, strings.Join(anchors, "<br>")))
	}
	rows = append(rows, tableEnd)
	return strings.Join(rows, "\n")
}

func requirementsTable(report *quality.Report) string {
	rows := []string{tableStart + "<th>Eis (<code><small>Identifier</small></code>)</th><th>Metrieken</th></tr>"}
	for _, req := range report.Catalog.Requirements {
		names := make([]string, 0, len(req.MetricClasses))
		for _, id := range req.MetricClasses {
			if mc, ok := report.Catalog.MetricClass(id); ok {
				names = append(names, mc.Name)
			} else {
				names = append(names, id)
			}
		}
		rows = append(rows, fmt.Sprintf("  <tr><td>%s</td><td>%s (<code><small>%s</small></code>)</td><td>%s</td></tr>",
			icon(quality.Includes(report.Included.Requirements, req.ID)), req.Name, req.ID, strings.Join(names, ", ")))
	}
	rows = append(rows, tableEnd)
	return strings.Join(rows, "\n")
}

func domainObjectClassesTable(report *quality.Report) string {
	rows := []string{tableStart + "<th>Domeinobject (<code><small>Identifier</small></code>)</th>" +
		"<th>Default eisen</th><th>Optionele eisen</th></tr>"}
	for _, doc := range report.Catalog.DomainObjectClasses {
		rows = append(rows, fmt.Sprintf("  <tr><td>%s</td><td>%s (<code><small>%s</small></code>)</td><td>%s</td><td>%s</td></tr>",
			icon(quality.Includes(report.Included.DomainObjectClasses, doc.ID)), doc.ID, doc.ID,
			requirementNames(report.Catalog, doc.DefaultRequirements),
			requirementNames(report.Catalog, doc.OptionalRequirements)))
	}
	rows = append(rows, tableEnd)
	return strings.Join(rows, "\n")
}

func requirementNames(catalog quality.Catalog, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if req, ok := catalog.Requirement(id); ok {
			names = append(names, req.Name)
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, ", ")
}

func projectResources(report *quality.Report) string {
	lines := []string{"<ul>"}
	for _, r := range report.Resources {
		urlText := "Geen url geconfigureerd"
		if r.URL != "" {
			urlText = fmt.Sprintf(`<a href="%[1]s">%[1]s</a>`, html.EscapeString(r.URL))
		}
		lines = append(lines, fmt.Sprintf("<li>%s: %s</li>", html.EscapeString(r.Name), urlText))
	}
	lines = append(lines, "</ul>")
	return strings.Join(lines, "\n")
}
