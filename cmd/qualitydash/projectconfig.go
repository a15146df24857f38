package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/davetashner/qualitydash/internal/config"
	"github.com/davetashner/qualitydash/internal/quality"
)

// loadProject loads the project config at path, or the one in the current
// directory when path is empty, and layers the global config under it.
// Credentials found in the result are registered for redaction.
func loadProject(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, exitError(ExitInvalidArgs, "qualitydash: %v", err)
		}
		path = found
	}

	project, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, exitError(ExitInvalidArgs, "qualitydash: %v", err)
		}
		return nil, exitError(ExitInvalidArgs, "qualitydash: failed to load %s (%v)", path, err)
	}
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "qualitydash: failed to load global config (%v)", err)
	}
	cfg := config.Merge(project, global)
	registerSecrets(cfg)
	slog.Debug("loaded config", "path", path, "sections", len(cfg.Sections))
	return cfg, nil
}

// loadValidProject is loadProject followed by validation against the
// built-in catalog.
func loadValidProject(path string) (*config.Config, error) {
	cfg, err := loadProject(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg, quality.DefaultCatalog()); err != nil {
		return nil, exitError(ExitInvalidArgs, "qualitydash: %v", err)
	}
	return cfg, nil
}

// countMetrics returns the number of configured metrics.
func countMetrics(cfg *config.Config) int {
	n := 0
	for _, s := range cfg.Sections {
		n += len(s.Metrics)
	}
	return n
}

// describe is a one-line summary of cfg for log and status messages.
func describe(cfg *config.Config) string {
	return fmt.Sprintf("%d sections, %d metrics, %d sources",
		len(cfg.Sections), countMetrics(cfg), len(configuredSources(cfg.Sources)))
}
