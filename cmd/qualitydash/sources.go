package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/quality"
	"github.com/davetashner/qualitydash/internal/report"
)

var sourcesConfig string

// sourcesCmd lists the metric source catalog and what the project uses.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List metric sources and which ones are configured",
	Long: `List every metric source class qualitydash knows about, whether the
project configures it, and the configured instances. Without a project
config only the catalog is listed.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().StringVarP(&sourcesConfig, "config", "c", "", "project config file (default: .qualitydash.yaml in the current directory)")
}

func runSources(cmd *cobra.Command, _ []string) error {
	var instances map[string][]string
	configured := quality.IncludedIn()
	if sourcesConfig != "" || hasProjectConfig() {
		cfg, err := loadProject(sourcesConfig)
		if err != nil {
			return err
		}
		instances = cfg.Sources.Instances()
		configured = quality.IncludedIn(cfg.Sources.SourceClassIDs()...)
	}

	tbl := report.NewTable(
		report.Column{Header: "Bron"},
		report.Column{Header: "Naam"},
		report.Column{Header: "Geconfigureerd", Color: configuredColor},
		report.Column{Header: "Instanties", MaxWidth: 60},
	)
	for _, sc := range quality.DefaultCatalog().SourceClasses {
		yes := "nee"
		if configured(sc.ID) {
			yes = "ja"
		}
		tbl.AddRow(sc.ID, sc.Name, yes, strings.Join(instances[sc.ID], ", "))
	}
	return tbl.Render(cmd.OutOrStdout())
}

func hasProjectConfig() bool {
	_, err := config.Find(".")
	return err == nil
}

var colorConfigured = color.New(color.FgGreen)

func configuredColor(v string) string {
	if v == "ja" {
		return colorConfigured.Sprint(v)
	}
	return v
}

// configuredSources names the configured sources in config key order.
func configuredSources(s config.SourcesConfig) []string {
	var names []string
	if s.Jira != nil {
		names = append(names, "jira")
	}
	if s.GitHub != nil {
		names = append(names, "github")
	}
	if s.ZAP != nil {
		names = append(names, "zap")
	}
	if s.Checkmarx != nil {
		names = append(names, "checkmarx")
	}
	if s.Jenkins != nil {
		names = append(names, "jenkins")
	}
	if s.Monitor != nil {
		names = append(names, "monitor")
	}
	return names
}
