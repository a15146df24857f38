// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package measure runs the metric measurements of a report with bounded
// concurrency and classifies each value against its norm.
package measure

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davetashner/qualitydash/internal/metricsource"
	"github.com/davetashner/qualitydash/internal/quality"
	"github.com/davetashner/qualitydash/internal/query"
)

// DefaultConcurrency bounds the number of measurements in flight when the
// configuration does not say otherwise.
const DefaultConcurrency = 8

const (
	textUnmeasurable = "De metriek kon niet gemeten worden."
	textNoSource     = "Niet alle benodigde bronnen zijn geconfigureerd."
)

// MeasureFunc returns the current value of a metric, or metricsource.Unknown
// when the value cannot be determined.
type MeasureFunc func(ctx context.Context) float64

// URLFunc returns anchor text to url links to the metric source.
type URLFunc func(ctx context.Context) map[string]string

// Job is one metric to measure.
type Job struct {
	ID       string // e.g. "PD-1"
	StableID string
	Class    string // metric class id in the catalog

	Measure  MeasureFunc
	URLs     URLFunc // optional
	URLLabel string

	// Text renders the measurement; {value} is replaced by the value.
	// Empty means "{value}".
	Text string

	// Target and LowTarget override the class defaults when non-nil.
	Target    *float64
	LowTarget *float64

	// NormParams fills other norm placeholders, such as {days}.
	NormParams map[string]any

	TechnicalDebt bool
	MissingSource bool // a required source is not configured
	Comment       string
	Version       string
}

// Section is a titled group of jobs.
type Section struct {
	ID       string
	Title    string
	Subtitle string
	Jobs     []Job
}

// Runner measures jobs against a catalog.
type Runner struct {
	catalog     quality.Catalog
	concurrency int
	now         func() time.Time
}

// NewRunner returns a Runner. A concurrency below 1 uses DefaultConcurrency.
func NewRunner(catalog quality.Catalog, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Runner{catalog: catalog, concurrency: concurrency, now: time.Now}
}

// Run measures every job of every section and returns the report sections
// in the given order. It fails only on catalog errors or cancellation;
// unmeasurable metrics get status missing.
func (r *Runner) Run(ctx context.Context, sections []Section) ([]*quality.Section, error) {
	out := make([]*quality.Section, len(sections))
	for i, s := range sections {
		for _, job := range s.Jobs {
			if _, ok := r.catalog.MetricClass(job.Class); !ok {
				return nil, fmt.Errorf("metric %s: unknown metric class %q", job.ID, job.Class)
			}
		}
		out[i] = &quality.Section{
			ID: s.ID, Title: s.Title, Subtitle: s.Subtitle,
			Metrics: make([]*quality.Metric, len(s.Jobs)),
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for i, s := range sections {
		for j, job := range s.Jobs {
			g.Go(func() error {
				m, err := r.measure(ctx, job)
				if err != nil {
					return err
				}
				out[i].Metrics[j] = m
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("measure: %w", err)
	}
	return out, nil
}

func (r *Runner) measure(ctx context.Context, job Job) (*quality.Metric, error) {
	class, _ := r.catalog.MetricClass(job.Class)
	th := thresholdsFor(class, job)

	start := r.now()
	var value float64 = metricsource.Unknown
	if !job.MissingSource && job.Measure != nil {
		value = job.Measure(ctx)
	}
	status := Evaluate(value, th)
	if job.MissingSource {
		status = quality.StatusMissingSource
	}

	params := map[string]any{
		"target":     FormatValue(th.Target),
		"low_target": FormatValue(th.LowTarget),
	}
	for k, v := range job.NormParams {
		params[k] = v
	}
	norm, err := class.NormWith(params)
	if err != nil {
		slog.Error("Metric class had faulty norm template", "class", class.ID, "error", err)
		return nil, err
	}

	m := &quality.Metric{
		ID:       job.ID,
		StableID: job.StableID,
		Class:    job.Class,
		Value:    value,
		Status:   status,
		URLLabel: job.URLLabel,
		Norm:     norm,
		Comment:  job.Comment,
		Version:  job.Version,
	}
	switch status {
	case quality.StatusMissingSource:
		m.Text = textNoSource
	case quality.StatusMissing:
		m.Text = textUnmeasurable
	default:
		if m.Text, err = renderText(job.Text, value); err != nil {
			return nil, fmt.Errorf("metric %s: %w", job.ID, err)
		}
	}
	if job.URLs != nil && status != quality.StatusMissingSource {
		m.URLs = job.URLs(ctx)
	}

	slog.Debug("measured metric", "metric", job.ID, "value", value, "status", status,
		"duration", r.now().Sub(start))
	return m, nil
}

func thresholdsFor(class quality.MetricClass, job Job) Thresholds {
	th := Thresholds{HigherIsBetter: class.HigherIsBetter, TechnicalDebt: job.TechnicalDebt}
	th.Target, _ = class.Default("target")
	th.LowTarget, _ = class.Default("low_target")
	if job.Target != nil {
		th.Target = *job.Target
	}
	if job.LowTarget != nil {
		th.LowTarget = *job.LowTarget
	}
	return th
}

func renderText(tmpl string, value float64) (string, error) {
	if tmpl == "" {
		tmpl = "{value}"
	}
	return query.Expand(tmpl, map[string]string{"value": FormatValue(value)})
}

// FormatValue prints a value without trailing zeros: 3, 2.5.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
