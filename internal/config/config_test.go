package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/tasklist/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sort != string(model.SortByStatus) {
		t.Errorf("Sort: got %q, want %q", cfg.Sort, model.SortByStatus)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvSort, string(model.SortByPriority))
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, dir)
	}
	if cfg.SortMode() != model.SortByPriority {
		t.Errorf("SortMode: got %q", cfg.SortMode())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

// The data-dir env override also decides where config.toml is read from.
func TestConfigFileFoundInEnvDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	toml := []byte("log_level = \"warn\"\nsort = \"priority\"\n")
	if err := os.WriteFile(filepath.Join(dir, configFileName), toml, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.SortMode() != model.SortByPriority {
		t.Errorf("SortMode: got %q", cfg.SortMode())
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, dir)
	}
}

func TestBadSortRejected(t *testing.T) {
	t.Setenv(EnvDataDir, t.TempDir())
	t.Setenv(EnvSort, "alphabetical")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown sort mode")
	}
}

func TestLogPathResolution(t *testing.T) {
	cfg := &Config{DataDir: "/data", LogFile: "app.log"}
	if got := cfg.LogPath(); got != filepath.Join("/data", "app.log") {
		t.Errorf("LogPath: got %q", got)
	}
	cfg.LogFile = string(os.PathSeparator) + "var/log/tasklist.log"
	if got := cfg.LogPath(); got != cfg.LogFile {
		t.Errorf("absolute LogPath: got %q", got)
	}
	cfg.LogFile = " "
	if got := cfg.LogPath(); got != "" {
		t.Errorf("empty LogPath: got %q", got)
	}
}
