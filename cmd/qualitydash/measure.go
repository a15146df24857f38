package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/qualitydash/internal/quality"
	"github.com/davetashner/qualitydash/internal/report"
)

// Measure-specific flag values.
var (
	measureConfig  string
	measureTimeout time.Duration
)

// measureCmd measures the metrics and prints them as terminal tables.
var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure all metrics and print the results",
	Long: `Measure every metric of the project definition and print one colored
table per section. Nothing is written to disk and the history file is
left untouched.`,
	Args: cobra.NoArgs,
	RunE: runMeasure,
}

func init() {
	measureCmd.Flags().StringVarP(&measureConfig, "config", "c", "", "project config file (default: .qualitydash.yaml in the current directory)")
	measureCmd.Flags().DurationVar(&measureTimeout, "timeout", 0, "maximum time for all measurements (0 means no limit)")
}

func runMeasure(cmd *cobra.Command, _ []string) error {
	cfg, err := loadValidProject(measureConfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if measureTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, measureTimeout)
		defer cancel()
	}

	sections, err := measureProject(ctx, cfg, quality.DefaultCatalog(), nil)
	if err != nil {
		return exitError(ExitTotalFailure, "qualitydash: %v", err)
	}
	if err := report.RenderMeasurement(cmd.OutOrStdout(), sections); err != nil {
		return exitError(ExitTotalFailure, "qualitydash: %v", err)
	}
	return unmeasuredError(sections)
}
