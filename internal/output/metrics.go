// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/davetashner/qualitydash/internal/quality"
)

type statusStyle struct {
	image string
	alt   string
	nr    int
	hover string
}

var statusStyles = map[quality.Status]statusStyle{
	quality.StatusRed:           {"sad", ":-(", 0, "Direct actie vereist: norm niet gehaald of meting te oud"},
	quality.StatusYellow:        {"plain", ":-|", 1, "Bijna goed: norm net niet gehaald"},
	quality.StatusGreen:         {"smile", ":-)", 2, "Goed: norm gehaald"},
	quality.StatusPerfect:       {"biggrin", ":-D", 3, "Perfect: score kan niet beter"},
	quality.StatusGrey:          {"ashamed", ":-o", 4, "Technische schuld: lossen we later op"},
	quality.StatusMissing:       {"missing", "x", 5, "Ontbrekend: metriek kan niet gemeten worden"},
	quality.StatusMissingSource: {"missing_source", "%", 6, "Ontbrekend: niet alle benodigde bronnen zijn geconfigureerd"},
}

// statusHistoryStart is the first date status history was recorded; older
// start dates are reported as "at least since".
var statusHistoryStart = time.Date(2013, 3, 19, 23, 59, 59, 0, time.Local)

// metricsData returns the JavaScript array of metric rows for the page.
func metricsData(report *quality.Report) string {
	var rows []string
	for _, m := range report.Metrics() {
		rows = append(rows, metricRow(m))
	}
	return "[" + strings.Join(rows, ",\n") + "]"
}

func metricRow(m *quality.Metric) string {
	style, ok := statusStyles[m.Status]
	if !ok {
		style = statusStyles[quality.StatusMissing]
	}
	hover := style.hover
	if !m.Since.IsZero() {
		qualifier := ""
		if !m.Since.After(statusHistoryStart) {
			qualifier = "tenminste "
		}
		hover += fmt.Sprintf(" (sinds %s%s)", qualifier, m.Since.Format("02-01-2006"))
	}
	section := quality.SectionPrefix(m.ID)
	version := m.Version
	if version == "" {
		version = "trunk"
	}

	columns := []string{
		fmt.Sprintf("{f: '%s', v: '%s'}", m.ID, metricNumber(m.ID)),
		fmt.Sprintf("'%s'", section),
		fmt.Sprintf("'%s'", m.Status),
		fmt.Sprintf(`'<img src="img/%s.png" border="0" width="100" height="25" />'`, m.ID),
		fmt.Sprintf(`{v: '%d', f: '<img src="img/%s.png" alt="%s" width="48" height="48" title="%s" border="0" />'}`,
			style.nr, style.image, style.alt, hover),
		fmt.Sprintf("'%s'", textWithLinks(m.Text, m.URLs, m.URLLabel)),
		fmt.Sprintf("'%s'", html.EscapeString(m.Norm)),
		fmt.Sprintf("'%s'", html.EscapeString(m.Comment)),
		fmt.Sprintf("'%s'", version),
	}
	return "[" + strings.Join(columns, ", ") + "]"
}

// metricNumber zero-pads the number of a metric id: "PD-3" becomes "PD-03".
func metricNumber(id string) string {
	section, num, ok := strings.Cut(id, "-")
	if !ok {
		return id
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s-%02d", section, n)
}

// textWithLinks escapes text and appends the sorted source links, e.g.
// "12 issues [Jira: <a ...>filter</a>]".
func textWithLinks(text string, urls map[string]string, label string) string {
	text = html.EscapeString(text)
	if len(urls) == 0 {
		return text
	}
	links := make([]string, 0, len(urls))
	for anchor, href := range urls {
		links = append(links, fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, href, html.EscapeString(anchor)))
	}
	sort.Strings(links)
	if label != "" {
		label += ": "
	}
	return fmt.Sprintf("%s [%s%s]", text, label, strings.Join(links, ", "))
}
