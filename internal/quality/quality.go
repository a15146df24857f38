// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package quality defines the report model that sits between measurement
// and rendering: sections, metrics, the catalog of known metric classes,
// metric sources, requirements and domain objects, and the dashboard grid.
package quality

import (
	"errors"
	"strings"
	"time"

	"github.com/davetashner/qualitydash/internal/history"
)

// ErrUnknownSection is returned when a section id does not resolve.
var ErrUnknownSection = errors.New("unknown section")

// Status is the traffic-light classification of a metric.
type Status string

const (
	StatusRed           Status = "red"
	StatusYellow        Status = "yellow"
	StatusGreen         Status = "green"
	StatusPerfect       Status = "perfect"
	StatusGrey          Status = "grey"
	StatusMissing       Status = "missing"
	StatusMissingSource Status = "missing_source"
)

// MetaSectionID is the id prefix of the section holding the meta metrics
// (percentages of metrics per status) and the report history.
const MetaSectionID = "MM"

// Metric is one measured metric as shown in the report.
type Metric struct {
	ID       string // e.g. "PD-3"; the prefix is the section id
	StableID string // key of the metric value in history snapshots
	Class    string // metric class identifier
	Value    float64
	Status   Status
	Since    time.Time // when the current status started; zero if unknown

	Text     string            // human-readable measurement report
	URLs     map[string]string // anchor text → url of the metric source
	URLLabel string
	Norm     string
	Comment  string
	Version  string // "trunk" or a release label
}

// Section is a titled group of metrics in the report.
type Section struct {
	ID       string // short id prefix, e.g. "PD"
	Title    string
	Subtitle string
	Metrics  []*Metric
	History  []history.Record
}

// SectionRef identifies the section a dashboard cell points at. Domain
// objects expose their own short name; plain ids use SectionID.
type SectionRef interface {
	ShortName() string
}

// SectionID is a literal section reference; it resolves to its upper case.
type SectionID string

// ShortName implements SectionRef.
func (s SectionID) ShortName() string { return strings.ToUpper(string(s)) }

// Resource is a named project resource link.
type Resource struct {
	Name string
	URL  string
}

// Report is everything the renderer needs. It is built once measurement
// has finished and is not modified by rendering.
type Report struct {
	Title    string
	Date     time.Time
	Sections []*Section
	Catalog  Catalog
	Included Selection

	// SourceInstances maps a metric source class id to the urls of the
	// configured instances of that source.
	SourceInstances map[string][]string

	Resources []Resource
	Dashboard Dashboard
}

// Section returns the section with the given id.
func (r *Report) Section(id string) (*Section, error) {
	for _, s := range r.Sections {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrUnknownSection
}

// MetaSection returns the meta-metrics section, or nil when absent.
func (r *Report) MetaSection() *Section {
	s, err := r.Section(MetaSectionID)
	if err != nil {
		return nil
	}
	return s
}

// Metrics returns every metric of every section in report order.
func (r *Report) Metrics() []*Metric {
	var out []*Metric
	for _, s := range r.Sections {
		out = append(out, s.Metrics...)
	}
	return out
}

// SectionPrefix returns the section part of a metric id ("PD" for "PD-3").
func SectionPrefix(metricID string) string {
	prefix, _, _ := strings.Cut(metricID, "-")
	return prefix
}

// MetaHistoryIDs are the stable ids under which the meta-metric
// percentages are stored in history snapshots.
var MetaHistoryIDs = history.CategoryIDs{
	Green:   "GreenMetaMetric",
	Red:     "RedMetaMetric",
	Yellow:  "YellowMetaMetric",
	Grey:    "GreyMetaMetric",
	Missing: "MissingMetaMetric",
}
