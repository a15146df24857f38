// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/davetashner/qualitydash/internal/quality"
)

// DashboardFormatter renders the dashboard grid of a report as an HTML table.
type DashboardFormatter struct {
	indent string
}

// NewDashboardFormatter returns a DashboardFormatter.
func NewDashboardFormatter() *DashboardFormatter {
	return &DashboardFormatter{indent: "    "}
}

// Render returns the dashboard table. Cells that reference an unknown
// section get the title "???".
func (d *DashboardFormatter) Render(report *quality.Report) string {
	in := func(level int) string { return strings.Repeat(d.indent, level) }

	lines := []string{
		`<table class="table table-condensed table-bordered">`,
		in(1) + "<thead>",
		in(2) + `<tr style="color: white; font-weight: bold; background-color: #2F95CF;">`,
	}
	for _, h := range report.Dashboard.Headers {
		colspan := h.ColSpan
		if colspan == 0 {
			colspan = 1
		}
		lines = append(lines, fmt.Sprintf(`%s<th colspan="%d" style="text-align: center;">%s</th>`,
			in(3), colspan, html.EscapeString(h.Label)))
	}
	lines = append(lines, in(2)+"</tr>", in(1)+"</thead>", in(1)+"<tbody>")

	for _, row := range report.Dashboard.Rows {
		lines = append(lines, in(2)+"<tr>")
		for _, cell := range row {
			id := sectionID(cell.Ref)
			title := "???"
			if s, err := report.Section(id); err == nil {
				title = s.Title
			}
			colspan, rowspan := cell.Spans()
			lines = append(lines,
				fmt.Sprintf(`%s<td colspan="%d" rowspan="%d" align="center" bgcolor="%s">`,
					in(3), colspan, rowspan, html.EscapeString(cell.Color)),
				fmt.Sprintf(`%s<div class="link_section_%s" title="%s"></div>`, in(4), id, html.EscapeString(title)),
				fmt.Sprintf(`%s<div id="section_summary_chart_%s"></div>`, in(4), id),
				in(3)+"</td>")
		}
		lines = append(lines, in(2)+"</tr>")
	}
	lines = append(lines, in(1)+"</tbody>", "</table>")
	return strings.Join(lines, "\n")
}

func sectionID(ref quality.SectionRef) string {
	if ref == nil {
		return ""
	}
	return ref.ShortName()
}
