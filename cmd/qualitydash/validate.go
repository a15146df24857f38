// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/redact"
)

// Validate-specific flag values.
var (
	validateConfig string
	validateDump   bool
)

// validateCmd checks a project definition without contacting any source.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the project config file",
	Long: `Validate the project definition against the metric catalog.

Checks section ids, metric classes and their sources, thresholds, source
settings, dashboard spans, requirements and domain objects, and reports
every problem at once. No metric source is contacted.

  qualitydash validate
  qualitydash validate -c path/to/.qualitydash.toml --dump`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "", "project config file (default: .qualitydash.yaml in the current directory)")
	validateCmd.Flags().BoolVar(&validateDump, "dump", false, "print the effective config as YAML, credentials redacted")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadValidProject(validateConfig)
	if err != nil {
		return err
	}
	if validateDump {
		var sb strings.Builder
		if err := config.Write(&sb, cfg); err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), redact.String(sb.String()))
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", describe(cfg))
	return nil
}
