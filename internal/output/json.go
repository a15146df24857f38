package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davetashner/qualitydash/internal/quality"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps the report sections with metadata for the JSON output format.
type JSONEnvelope struct {
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	Sections []JSONSection `json:"sections"`
	Metadata JSONMetadata  `json:"metadata"`
}

// JSONSection is one report section.
type JSONSection struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	Metrics  []JSONMetric `json:"metrics"`
}

// JSONMetric is one measured metric.
type JSONMetric struct {
	ID      string            `json:"id"`
	Class   string            `json:"class,omitempty"`
	Value   float64           `json:"value"`
	Status  quality.Status    `json:"status"`
	Text    string            `json:"text,omitempty"`
	Norm    string            `json:"norm,omitempty"`
	Comment string            `json:"comment,omitempty"`
	URLs    map[string]string `json:"urls,omitempty"`
}

// JSONMetadata summarizes the run that produced the report.
type JSONMetadata struct {
	TotalCount   int                    `json:"total_count"`
	StatusCounts map[quality.Status]int `json:"status_counts"`
	GeneratedAt  string                 `json:"generated_at"`
}

// JSONFormatter writes the report as a JSON object with a metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the report as a JSON document to w. Output is compact when
// Compact is set or w is a pipe or regular file, and pretty-printed otherwise.
func (f *JSONFormatter) Format(report *quality.Report, w io.Writer) error {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	envelope := JSONEnvelope{
		Title:    report.Title,
		Date:     report.Date.Format(time.RFC3339),
		Sections: []JSONSection{},
		Metadata: JSONMetadata{
			StatusCounts: map[quality.Status]int{},
			GeneratedAt:  now.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}
	for _, s := range report.Sections {
		js := JSONSection{ID: s.ID, Title: s.Title, Subtitle: s.Subtitle, Metrics: []JSONMetric{}}
		for _, m := range s.Metrics {
			js.Metrics = append(js.Metrics, JSONMetric{
				ID: m.ID, Class: m.Class, Value: m.Value, Status: m.Status,
				Text: m.Text, Norm: m.Norm, Comment: m.Comment, URLs: m.URLs,
			})
			envelope.Metadata.StatusCounts[m.Status]++
			envelope.Metadata.TotalCount++
		}
		envelope.Sections = append(envelope.Sections, js)
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	// Non-file writers (e.g. bytes.Buffer in tests) get pretty output.
	return false
}
