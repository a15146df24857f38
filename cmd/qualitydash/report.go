// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/history"
	"github.com/davetashner/qualitydash/internal/measure"
	"github.com/davetashner/qualitydash/internal/output"
	"github.com/davetashner/qualitydash/internal/quality"
)

// now is the report clock; tests pin it.
var now = time.Now

// Report-specific flag values.
var (
	reportConfig  string
	reportOutput  string
	reportFormat  string
	reportTimeout time.Duration
)

// reportCmd measures all metrics and writes the quality report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Measure all metrics and write the quality report",
	Long: `Measure every metric of the project definition, append the meta metrics
to the history file, and write the report.

The html format writes index.html into the output directory. Other
formats (json, markdown) are written to stdout. The history file is kept
in the output directory unless history_file is an absolute path.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportConfig, "config", "c", "", "project config file (default: .qualitydash.yaml in the current directory)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "report", "output directory")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "html", "output format: html, json, or markdown")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 10*time.Minute, "maximum time for all measurements")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadValidProject(reportConfig)
	if err != nil {
		return err
	}
	f, err := output.GetFormatter(reportFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "qualitydash: %v", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), reportTimeout)
	defer cancel()

	if f.Name() == "html" {
		current := cfg.CurrentVersion
		if current == "" {
			current = Version
		}
		f = output.NewHTMLFormatter(latestVersion(ctx, cfg), current)
	}

	historyPath := cfg.HistoryFile
	if !filepath.IsAbs(historyPath) {
		historyPath = filepath.Join(reportOutput, historyPath)
	}
	records, err := history.Load(historyPath)
	if err != nil {
		return exitError(ExitTotalFailure, "qualitydash: %v", err)
	}

	slog.Info("measuring", "project", cfg.Title, "config", describe(cfg))
	catalog := quality.DefaultCatalog()
	sections, err := measureProject(ctx, cfg, catalog, records)
	if err != nil {
		return exitError(ExitTotalFailure, "qualitydash: %v", err)
	}
	report := buildReport(cfg, catalog, sections, now())

	if df, ok := f.(output.DirectoryFormatter); ok {
		if err := df.FormatDir(report, reportOutput); err != nil {
			return exitError(ExitTotalFailure, "qualitydash: %v", err)
		}
		slog.Info("report written", "dir", reportOutput)
	} else if err := f.Format(report, cmd.OutOrStdout()); err != nil {
		return exitError(ExitTotalFailure, "qualitydash: %v", err)
	}

	if meta := report.MetaSection(); meta != nil {
		if err := history.Save(historyPath, meta.History); err != nil {
			return exitError(ExitTotalFailure, "qualitydash: %v", err)
		}
	}
	return unmeasuredError(sections)
}

// measureProject measures the configured sections and appends the meta
// section, whose history is records plus this run.
func measureProject(ctx context.Context, cfg *config.Config, catalog quality.Catalog, records []history.Record) ([]*quality.Section, error) {
	runner := measure.NewRunner(catalog, cfg.Concurrency)
	sections, err := runner.Run(ctx, planSections(cfg, buildSources(cfg), catalog))
	if err != nil {
		return nil, err
	}
	meta, _, err := runner.Meta(ctx, sections, records)
	if err != nil {
		return nil, err
	}
	return append(sections, meta), nil
}

// unmeasuredError returns an ExitPartialFailure error when any metric has
// status missing, nil otherwise.
func unmeasuredError(sections []*quality.Section) error {
	total, missing := 0, 0
	for _, s := range sections {
		if s.ID == quality.MetaSectionID {
			continue
		}
		for _, m := range s.Metrics {
			total++
			if m.Status == quality.StatusMissing {
				missing++
			}
		}
	}
	if missing == 0 {
		return nil
	}
	slog.Warn("some metrics could not be measured", "missing", missing, "total", total)
	return exitError(ExitPartialFailure, "qualitydash: %d of %d metrics could not be measured", missing, total)
}
