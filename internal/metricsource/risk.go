// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RiskLevel is a scanner severity bucket.
type RiskLevel string

const (
	RiskHigh          RiskLevel = "high"
	RiskMedium        RiskLevel = "medium"
	RiskLow           RiskLevel = "low"
	RiskInformational RiskLevel = "informational"
)

// RiskLevels lists the known risk levels from most to least severe.
var RiskLevels = []RiskLevel{RiskHigh, RiskMedium, RiskLow, RiskInformational}

// ParseRiskLevel normalizes s to a known risk level.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range RiskLevels {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// Title returns the label as scan reports print it, e.g. "High".
func (r RiskLevel) Title() string {
	// A Caser is stateful; use a fresh one per call.
	return cases.Title(language.English).String(string(r))
}
