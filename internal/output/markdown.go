package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/qualitydash/internal/quality"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the report as a human-readable Markdown summary.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the report to w: a title heading, a status distribution
// table, and one metric table per section. Sections without metrics are
// skipped.
func (m *MarkdownFormatter) Format(report *quality.Report, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", strings.TrimSpace(report.Title)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if !report.Date.IsZero() {
		if _, err := fmt.Fprintf(w, "**Datum:** %s\n\n", report.Date.Format(reportDateLayout)); err != nil {
			return fmt.Errorf("write date: %w", err)
		}
	}
	if err := writeStatusTable(w, report.Metrics()); err != nil {
		return err
	}
	for _, s := range report.Sections {
		if len(s.Metrics) == 0 {
			continue
		}
		if err := writeSection(w, s); err != nil {
			return err
		}
	}
	return nil
}

var markdownStatusOrder = []quality.Status{
	quality.StatusRed, quality.StatusYellow, quality.StatusGreen, quality.StatusPerfect,
	quality.StatusGrey, quality.StatusMissing, quality.StatusMissingSource,
}

func writeStatusTable(w io.Writer, metrics []*quality.Metric) error {
	counts := make(map[quality.Status]int)
	for _, m := range metrics {
		counts[m.Status]++
	}
	if _, err := fmt.Fprintf(w, "| Status | Aantal |\n|--------|--------|\n"); err != nil {
		return fmt.Errorf("write status table: %w", err)
	}
	for _, st := range markdownStatusOrder {
		if _, err := fmt.Fprintf(w, "| %s | %d |\n", st, counts[st]); err != nil {
			return fmt.Errorf("write status table: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write status table: %w", err)
	}
	return nil
}

func writeSection(w io.Writer, s *quality.Section) error {
	heading := s.Title
	if s.Subtitle != "" {
		heading += " " + s.Subtitle
	}
	if _, err := fmt.Fprintf(w, "## %s (%d metrieken)\n\n", heading, len(s.Metrics)); err != nil {
		return fmt.Errorf("write section heading: %w", err)
	}
	if _, err := fmt.Fprintf(w, "| Metriek | Status | Meting | Norm |\n|---------|--------|--------|------|\n"); err != nil {
		return fmt.Errorf("write section table: %w", err)
	}
	for _, m := range s.Metrics {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			m.ID, m.Status, markdownCell(m.Text), markdownCell(m.Norm)); err != nil {
			return fmt.Errorf("write metric: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write section end: %w", err)
	}
	return nil
}

// markdownCell keeps a value on one table row.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
