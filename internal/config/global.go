// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global qualitydash configuration.
// It uses $XDG_CONFIG_HOME/qualitydash if set, otherwise ~/.config/qualitydash.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "qualitydash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "qualitydash")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file, which typically holds
// credentials shared by several projects. If the file does not exist, it
// returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	cfg, err := Load(GlobalConfigPath())
	if errors.Is(err, ErrNotFound) {
		return &Config{}, nil
	}
	return cfg, err
}
