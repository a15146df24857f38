// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package measure

import (
	"github.com/davetashner/qualitydash/internal/metricsource"
	"github.com/davetashner/qualitydash/internal/quality"
)

// Thresholds are the norm boundaries of a metric.
type Thresholds struct {
	Target         float64
	LowTarget      float64
	HigherIsBetter bool
	TechnicalDebt  bool // red and yellow are reported as grey
}

// Evaluate classifies value. For lower-is-better metrics 0 is perfect,
// up to Target is green and above LowTarget red. Higher-is-better metrics
// mirror that without a perfect value.
func Evaluate(value float64, th Thresholds) quality.Status {
	if value == metricsource.Unknown {
		return quality.StatusMissing
	}

	var status quality.Status
	switch {
	case !th.HigherIsBetter && value == 0:
		status = quality.StatusPerfect
	case !th.HigherIsBetter && value <= th.Target, th.HigherIsBetter && value >= th.Target:
		status = quality.StatusGreen
	case !th.HigherIsBetter && value > th.LowTarget, th.HigherIsBetter && value < th.LowTarget:
		status = quality.StatusRed
	default:
		status = quality.StatusYellow
	}

	if th.TechnicalDebt && (status == quality.StatusRed || status == quality.StatusYellow) {
		return quality.StatusGrey
	}
	return status
}
