// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package report

import (
	"github.com/fatih/color"

	"github.com/davetashner/qualitydash/internal/quality"
)

// Shared color printers.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorGrey   = color.New(color.FgHiBlack)
	colorBold   = color.New(color.Bold)
)

// ColorStatus colors a metric status label with its traffic-light color.
func ColorStatus(val string) string {
	switch quality.Status(val) {
	case quality.StatusRed:
		return colorRed.Sprint(val)
	case quality.StatusYellow:
		return colorYellow.Sprint(val)
	case quality.StatusGreen, quality.StatusPerfect:
		return colorGreen.Sprint(val)
	case quality.StatusGrey, quality.StatusMissing, quality.StatusMissingSource:
		return colorGrey.Sprint(val)
	default:
		return val
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
