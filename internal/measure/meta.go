// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package measure

import (
	"context"
	"math"
	"strconv"

	"github.com/davetashner/qualitydash/internal/history"
	"github.com/davetashner/qualitydash/internal/quality"
)

// Meta measures the meta metrics: the percentage of metrics per status
// over all given sections. It returns the meta section, whose history is
// records plus the new snapshot, and the snapshot itself.
func (r *Runner) Meta(ctx context.Context, sections []*quality.Section, records []history.Record) (*quality.Section, history.Record, error) {
	pcts := StatusPercentages(sections)
	ids := quality.MetaHistoryIDs

	entries := []struct {
		class string
		value float64
		text  string
	}{
		{ids.Green, pcts.Green, "{value}% van de metrieken is groen."},
		{ids.Red, pcts.Red, "{value}% van de metrieken is rood."},
		{ids.Yellow, pcts.Yellow, "{value}% van de metrieken is geel."},
		{ids.Grey, pcts.Grey, "{value}% van de metrieken is grijs."},
		{ids.Missing, pcts.Missing, "{value}% van de metrieken ontbreekt."},
	}

	plan := Section{ID: quality.MetaSectionID, Title: "Meta metrieken"}
	values := make(map[string]float64, len(entries))
	for i, e := range entries {
		v := e.value
		plan.Jobs = append(plan.Jobs, Job{
			ID:       quality.MetaSectionID + "-" + strconv.Itoa(i+1),
			StableID: e.class,
			Class:    e.class,
			Measure:  func(context.Context) float64 { return v },
			Text:     e.text,
		})
		values[e.class] = v
	}

	out, err := r.Run(ctx, []Section{plan})
	if err != nil {
		return nil, history.Record{}, err
	}
	rec := history.NewRecord(r.now(), values)
	meta := out[0]
	meta.History = history.Append(records, rec)
	return meta, rec, nil
}

// Percentages holds the share of metrics per status group, in percent
// rounded to one decimal.
type Percentages struct {
	Green, Red, Yellow, Grey, Missing float64
}

// StatusPercentages counts perfect as green and missing_source as missing.
// Meta sections are skipped. Without metrics all shares are 0.
func StatusPercentages(sections []*quality.Section) Percentages {
	var green, red, yellow, grey, missing, total int
	for _, s := range sections {
		if s.ID == quality.MetaSectionID {
			continue
		}
		for _, m := range s.Metrics {
			total++
			switch m.Status {
			case quality.StatusGreen, quality.StatusPerfect:
				green++
			case quality.StatusRed:
				red++
			case quality.StatusYellow:
				yellow++
			case quality.StatusGrey:
				grey++
			default:
				missing++
			}
		}
	}
	if total == 0 {
		return Percentages{}
	}
	pct := func(n int) float64 {
		return math.Round(1000*float64(n)/float64(total)) / 10
	}
	return Percentages{
		Green: pct(green), Red: pct(red), Yellow: pct(yellow), Grey: pct(grey), Missing: pct(missing),
	}
}
