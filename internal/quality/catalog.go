// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package quality

import (
	"fmt"

	"github.com/davetashner/qualitydash/internal/query"
)

// MetricClass describes a kind of metric the software can measure.
type MetricClass struct {
	ID           string
	Name         string
	NormTemplate string         // e.g. "Maximaal {target} ..."; named placeholders
	NormDefaults map[string]any // default values for the norm template

	// HigherIsBetter flips the target comparison: values below the
	// target are yellow and values below the low target red.
	HigherIsBetter bool
}

// Norm renders the norm template with the class defaults. An error means
// the catalog entry itself is broken.
func (c MetricClass) Norm() (string, error) {
	return c.NormWith(nil)
}

// NormWith renders the norm template with params layered over the defaults.
func (c MetricClass) NormWith(params map[string]any) (string, error) {
	named := make(map[string]string, len(c.NormDefaults)+len(params))
	for k, v := range c.NormDefaults {
		named[k] = fmt.Sprint(v)
	}
	for k, v := range params {
		named[k] = fmt.Sprint(v)
	}
	norm, err := query.Expand(c.NormTemplate, named)
	if err != nil {
		return "", fmt.Errorf("metric class %s: %w", c.ID, err)
	}
	return norm, nil
}

// SourceClass describes a kind of external metric source.
type SourceClass struct {
	ID   string
	Name string
}

// Requirement groups metric classes that a domain object can be held to.
type Requirement struct {
	ID            string
	Name          string
	MetricClasses []string // metric class ids
}

// DomainObjectClass is a kind of subject the report can cover.
type DomainObjectClass struct {
	ID                   string
	DefaultRequirements  []string // requirement ids
	OptionalRequirements []string // requirement ids
}

// Catalog lists everything the software knows about, in display order.
type Catalog struct {
	MetricClasses       []MetricClass
	SourceClasses       []SourceClass
	Requirements        []Requirement
	DomainObjectClasses []DomainObjectClass
}

// MetricClass looks up a metric class by id.
func (c Catalog) MetricClass(id string) (MetricClass, bool) {
	for _, mc := range c.MetricClasses {
		if mc.ID == id {
			return mc, true
		}
	}
	return MetricClass{}, false
}

// SourceClass looks up a metric source class by id.
func (c Catalog) SourceClass(id string) (SourceClass, bool) {
	for _, sc := range c.SourceClasses {
		if sc.ID == id {
			return sc, true
		}
	}
	return SourceClass{}, false
}

// Requirement looks up a requirement by id.
func (c Catalog) Requirement(id string) (Requirement, bool) {
	for _, r := range c.Requirements {
		if r.ID == id {
			return r, true
		}
	}
	return Requirement{}, false
}

// Inclusion reports whether the catalog entry with the given stable
// identifier is part of the current report configuration.
type Inclusion func(id string) bool

// IncludedIn returns an Inclusion that accepts exactly the given ids.
func IncludedIn(ids ...string) Inclusion {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

// Selection holds the inclusion predicates per catalog kind. A nil
// predicate includes nothing.
type Selection struct {
	MetricClasses       Inclusion
	SourceClasses       Inclusion
	Requirements        Inclusion
	DomainObjectClasses Inclusion
}

// Includes applies pred to id, treating a nil predicate as "nothing included".
func Includes(pred Inclusion, id string) bool {
	return pred != nil && pred(id)
}

// Default reads a numeric norm default, e.g. "target" or "days".
func (c MetricClass) Default(key string) (float64, bool) {
	switch v := c.NormDefaults[key].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		MetricClasses: []MetricClass{
			{ID: "UserStoriesNotReviewedAndApproved", Name: "Hoeveelheid niet gereviewde en goedgekeurde user stories",
				NormTemplate: "Maximaal {target} user stories zijn niet gereviewd en goedgekeurd. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 3}},
			{ID: "UserStoriesWithTooFewLogicalTestCases", Name: "Hoeveelheid user stories met onvoldoende logische testgevallen",
				NormTemplate: "Maximaal {target} user stories hebben onvoldoende logische testgevallen. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 3, "low_target": 5}},
			{ID: "LogicalTestCasesNotReviewed", Name: "Hoeveelheid niet gereviewde logische testgevallen",
				NormTemplate: "Maximaal {target} logische testgevallen zijn niet gereviewd. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 15}},
			{ID: "LogicalTestCasesNotAutomated", Name: "Hoeveelheid nog te automatiseren logische testgevallen",
				NormTemplate: "Maximaal {target} van de te automatiseren logische testgevallen is nog niet geautomatiseerd. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 9, "low_target": 15}},
			{ID: "ManualLogicalTestCases", Name: "Hoeveelheid te lang niet uitgevoerde handmatige logische testgevallen",
				NormTemplate: "Maximaal {target} handmatige logische testgevallen zijn langer dan {days} dagen niet uitgevoerd. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 10, "low_target": 50, "days": 21}},
			{ID: "OpenIssues", Name: "Hoeveelheid openstaande issues",
				NormTemplate: "Maximaal {target} openstaande issues. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 10, "low_target": 20}},
			{ID: "StoryPoints", Name: "Hoeveelheid storypoints",
				NormTemplate: "Minimaal {target} storypoints. Minder dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 30, "low_target": 20}, HigherIsBetter: true},
			{ID: "HighRiskZAPScanAlertsMetric", Name: "Hoeveelheid ZAP Scan alerts met hoge risiconiveau",
				NormTemplate: "Maximaal {target} ZAP Scan alerts met hoge risiconiveau. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 0}},
			{ID: "MediumRiskZAPScanAlertsMetric", Name: "Hoeveelheid ZAP Scan alerts met medium risiconiveau",
				NormTemplate: "Maximaal {target} ZAP Scan alerts met medium risiconiveau. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 5, "low_target": 10}},
			{ID: "HighRiskCheckmarxAlertsMetric", Name: "Hoeveelheid Checkmarx alerts met hoge risiconiveau",
				NormTemplate: "Maximaal {target} Checkmarx alerts met hoge risiconiveau. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 0}},
			{ID: "MediumRiskCheckmarxAlertsMetric", Name: "Hoeveelheid Checkmarx alerts met medium risiconiveau",
				NormTemplate: "Maximaal {target} Checkmarx alerts met medium risiconiveau. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 3}},
			{ID: "FailingCIJobs", Name: "Hoeveelheid falende CI-jobs",
				NormTemplate: "Maximaal {target} CI-jobs falen. Meer dan {low_target} is rood. Een CI-job faalt als de laatste bouwpoging niet is geslaagd en er de afgelopen {days} dagen geen geslaagde bouwpogingen zijn geweest.",
				NormDefaults: map[string]any{"target": 0, "low_target": 2, "days": 1}},
			{ID: "UnusedCIJobs", Name: "Hoeveelheid ongebruikte CI-jobs",
				NormTemplate: "Maximaal {target} CI-jobs zijn ongebruikt. Meer dan {low_target} is rood. Een CI-job is ongebruikt als er de afgelopen {days} dagen geen bouwpogingen zijn geweest.",
				NormDefaults: map[string]any{"target": 0, "low_target": 2, "days": 180}},
			{ID: "DownMonitors", Name: "Hoeveelheid niet beschikbare diensten",
				NormTemplate: "Maximaal {target} diensten zijn niet beschikbaar. Meer dan {low_target} is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 0}},
			{ID: "GreenMetaMetric", Name: "Percentage groene metrieken",
				NormTemplate: "Minimaal {target}% van de metrieken is groen. Minder dan {low_target}% is rood.",
				NormDefaults: map[string]any{"target": 90, "low_target": 75}, HigherIsBetter: true},
			{ID: "RedMetaMetric", Name: "Percentage rode metrieken",
				NormTemplate: "Maximaal {target}% van de metrieken is rood. Meer dan {low_target}% is rood.",
				NormDefaults: map[string]any{"target": 5, "low_target": 10}},
			{ID: "YellowMetaMetric", Name: "Percentage gele metrieken",
				NormTemplate: "Maximaal {target}% van de metrieken is geel. Meer dan {low_target}% is rood.",
				NormDefaults: map[string]any{"target": 5, "low_target": 10}},
			{ID: "GreyMetaMetric", Name: "Percentage grijze metrieken",
				NormTemplate: "Maximaal {target}% van de metrieken is grijs. Meer dan {low_target}% is rood.",
				NormDefaults: map[string]any{"target": 5, "low_target": 10}},
			{ID: "MissingMetaMetric", Name: "Percentage ontbrekende metrieken",
				NormTemplate: "Maximaal {target}% van de metrieken ontbreekt. Meer dan {low_target}% is rood.",
				NormDefaults: map[string]any{"target": 0, "low_target": 5}},
		},
		SourceClasses: []SourceClass{
			{ID: "Jira", Name: "Jira"},
			{ID: "JiraFilter", Name: "Jira filter"},
			{ID: "JiraBacklog", Name: "Jira backlog"},
			{ID: "GitHubIssues", Name: "GitHub issues"},
			{ID: "ZAPScanReport", Name: "ZAP Scan rapport"},
			{ID: "Checkmarx", Name: "Checkmarx"},
			{ID: "Jenkins", Name: "Jenkins build server"},
			{ID: "Monitor", Name: "Beschikbaarheidsmonitor"},
		},
		Requirements: []Requirement{
			{ID: "TrackReadinessUS", Name: "Track user story readiness",
				MetricClasses: []string{"UserStoriesNotReviewedAndApproved", "UserStoriesWithTooFewLogicalTestCases"}},
			{ID: "TrackTestDesign", Name: "Track test design",
				MetricClasses: []string{"LogicalTestCasesNotReviewed", "LogicalTestCasesNotAutomated", "ManualLogicalTestCases"}},
			{ID: "TrackSecurityRisks", Name: "Track security risks",
				MetricClasses: []string{"HighRiskZAPScanAlertsMetric", "MediumRiskZAPScanAlertsMetric", "HighRiskCheckmarxAlertsMetric", "MediumRiskCheckmarxAlertsMetric"}},
			{ID: "TrackCIJobs", Name: "Track CI jobs",
				MetricClasses: []string{"FailingCIJobs", "UnusedCIJobs"}},
			{ID: "TrackAvailability", Name: "Track availability",
				MetricClasses: []string{"DownMonitors"}},
			{ID: "TrackIssues", Name: "Track issues",
				MetricClasses: []string{"OpenIssues", "StoryPoints"}},
		},
		DomainObjectClasses: []DomainObjectClass{
			{ID: "Project", DefaultRequirements: []string{"TrackCIJobs", "TrackIssues"}, OptionalRequirements: []string{"TrackAvailability"}},
			{ID: "Product", DefaultRequirements: []string{"TrackSecurityRisks"}, OptionalRequirements: []string{"TrackTestDesign"}},
			{ID: "Process", DefaultRequirements: []string{"TrackReadinessUS"}, OptionalRequirements: []string{"TrackTestDesign"}},
			{ID: "Environment", OptionalRequirements: []string{"TrackAvailability"}},
		},
	}
}
