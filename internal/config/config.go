// Package config loads machine-local settings: where state lives, how the
// list sorts, where logs go. User data itself stays in the JSON state slot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/tasklist/internal/model"
)

const (
	configFileName = "config.toml"
	appDirName     = ".tasklist"

	// Env overrides; these beat the config file, flags beat everything.
	EnvDataDir  = "TASKLIST_DATA_DIR"
	EnvSort     = "TASKLIST_SORT"
	EnvLogLevel = "TASKLIST_LOG_LEVEL"
)

// Config holds the resolved settings.
type Config struct {
	DataDir  string `toml:"data_dir"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
	// Sort selects the list ordering: "status" (table mode) or "priority"
	// (the reduced fixed-priority mode).
	Sort string `toml:"sort"`
}

// Load resolves configuration in defaults → file → env order. The config
// file is optional; a missing file is not an error, a malformed one is.
// The data-dir env override also decides where the file is looked up.
func Load() (*Config, error) {
	cfg := defaults()

	dir := cfg.DataDir
	if v := os.Getenv(EnvDataDir); v != "" {
		dir = v
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvSort); v != "" {
		cfg.Sort = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	dir := appDirName
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, appDirName)
	}
	return &Config{
		DataDir:  dir,
		LogFile:  "tasklist.log",
		LogLevel: "info",
		Sort:     string(model.SortByStatus),
	}
}

func (c *Config) validate() error {
	switch model.SortMode(c.Sort) {
	case model.SortByStatus, model.SortByPriority:
	default:
		return fmt.Errorf("sort: want %q or %q, got %q",
			model.SortByStatus, model.SortByPriority, c.Sort)
	}
	return nil
}

// SortMode returns the validated sort setting as its model type.
func (c *Config) SortMode() model.SortMode { return model.SortMode(c.Sort) }

// LogPath resolves the log file location under the data dir unless an
// absolute path was configured.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return ""
	}
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}
