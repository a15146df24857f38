package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	qdlog "github.com/davetashner/qualitydash/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

// rootCmd is the base command for qualitydash.
var rootCmd = &cobra.Command{
	Use:   "qualitydash",
	Short: "Measure software quality metrics and publish a dashboard",
	Long: `Qualitydash measures software quality metrics from issue trackers,
security scan reports, CI servers and availability monitors, classifies
each metric against its norm, and renders an HTML dashboard with trend
history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		qdlog.Setup(verbose, quiet, logFormat)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", qdlog.FormatText, "log format: text or json")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(measureCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
