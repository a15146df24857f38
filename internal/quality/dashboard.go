// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package quality

// DashboardHeader is one header cell of the dashboard grid.
type DashboardHeader struct {
	Label   string
	ColSpan int
}

// DashboardCell is one body cell. Zero spans mean 1.
type DashboardCell struct {
	Ref     SectionRef
	Color   string
	ColSpan int
	RowSpan int
}

// Spans returns the cell's colspan and rowspan, defaulting each to 1.
func (c DashboardCell) Spans() (colspan, rowspan int) {
	colspan, rowspan = c.ColSpan, c.RowSpan
	if colspan == 0 {
		colspan = 1
	}
	if rowspan == 0 {
		rowspan = 1
	}
	return colspan, rowspan
}

// Dashboard is the 2D summary grid shown at the top of the report.
type Dashboard struct {
	Headers []DashboardHeader
	Rows    [][]DashboardCell
}
