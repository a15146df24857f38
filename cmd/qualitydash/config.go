package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/redact"
)

// Config command flags.
var (
	configPath   string
	configGlobal bool
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View qualitydash configuration",
	Long: `View qualitydash configuration.

Qualitydash reads the project definition from .qualitydash.yaml (or
.qualitydash.toml) in the current directory. A global config at
~/.config/qualitydash/config.yaml provides credentials and defaults.
Project settings override global settings. Credentials are redacted.`,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path. List elements are
addressed by index.

Examples:
  qualitydash config get title
  qualitydash config get sources.jira.url
  qualitydash config get sections.0.metrics
  qualitydash config get --global sources`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all effective configuration values, annotated with whether they
come from the project config, the global config, or a built-in default.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "project config file (default: .qualitydash.yaml in the current directory)")
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read the global config only")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if configGlobal {
		cfg, err = config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		registerSecrets(cfg)
	} else if cfg, err = loadProject(configPath); err != nil {
		return err
	}

	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return err
	}
	return printValue(cmd, val)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	path := configPath
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return exitError(ExitInvalidArgs, "qualitydash: %v", err)
		}
		path = found
	}
	project, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	merged := config.Merge(project, global)
	registerSecrets(merged)

	projectMap, err := config.Flatten(project)
	if err != nil {
		return err
	}
	globalMap, err := config.Flatten(global)
	if err != nil {
		return err
	}
	mergedMap, err := config.Flatten(merged)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(mergedMap))
	for k := range mergedMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		source := "default"
		if _, ok := projectMap[k]; ok {
			source = "project"
		} else if _, ok := globalMap[k]; ok {
			source = "global"
		}
		_, _ = fmt.Fprintf(w, "%s = %s %s\n", k, redact.String(fmt.Sprint(mergedMap[k])), formatSource(source))
	}
	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), redact.String(string(data)))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), redact.String(fmt.Sprint(v)))
	}
	return nil
}

var (
	globalColor  = color.New(color.FgCyan)
	projectColor = color.New(color.FgGreen)
)

// formatSource returns a colorized source annotation.
func formatSource(source string) string {
	switch source {
	case "global":
		return globalColor.Sprint("(global)")
	case "project":
		return projectColor.Sprint("(project)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
