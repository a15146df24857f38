// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package report renders measurement results as colored terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davetashner/qualitydash/internal/quality"
)

// maxTextWidth keeps measurement texts on one terminal line.
const maxTextWidth = 60

// RenderMeasurement writes one table per section with metric id, status,
// value and text. Sections without metrics are listed with a note.
func RenderMeasurement(w io.Writer, sections []*quality.Section) error {
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("render measurement: %w", err)
			}
		}
		title := s.Title
		if s.Subtitle != "" {
			title += " " + s.Subtitle
		}
		if _, err := fmt.Fprintf(w, "%s (%s)\n", SectionTitle(title), s.ID); err != nil {
			return fmt.Errorf("render measurement: %w", err)
		}
		if len(s.Metrics) == 0 {
			if _, err := fmt.Fprintln(w, "  geen metrieken"); err != nil {
				return fmt.Errorf("render measurement: %w", err)
			}
			continue
		}

		tbl := NewTable(
			Column{Header: "Metriek"},
			Column{Header: "Status", Color: ColorStatus},
			Column{Header: "Waarde", Align: AlignRight},
			Column{Header: "Meting", MaxWidth: maxTextWidth},
		)
		for _, m := range s.Metrics {
			tbl.AddRow(m.ID, string(m.Status), formatValue(m.Value), m.Text)
		}
		if err := tbl.Render(w); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(v float64) string {
	if v < 0 {
		return "?"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
