package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, name := range []string{
		"CHORED_CONFIG", "CHORED_DATA_DIR", "CHORED_BACKEND", "CHORED_DB_PATH",
		"CHORED_STATE_FILE", "CHORED_BUDGET_MINUTES", "CHORED_LOG_LEVEL",
		"CHORED_DEBUG", "CHORED_LOG_FILE", "CHORED_SCHEDULER_BUFFER",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	wantData := filepath.Join(dir, "data", "chored")
	if cfg.DataDir != wantData {
		t.Fatalf("data dir = %q, want %q", cfg.DataDir, wantData)
	}
	if cfg.Backend != "sqlite" || cfg.BudgetMinutes != 60 || cfg.SchedulerBuffer != 16 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StorePath() != filepath.Join(wantData, "chored.db") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if DefaultPath() != filepath.Join(dir, "config", "chored", FileName) {
		t.Fatalf("unexpected config path: %q", DefaultPath())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load(filepath.Join(dir, "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		`data_dir = "/srv/chores"`,
		`backend = "json"`,
		`budget_minutes = 45`,
		`log_level = "warn"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "json" || cfg.BudgetMinutes != 45 || cfg.LogLevel != "warn" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.StorePath() != filepath.Join("/srv/chores", "state.json") {
		t.Fatalf("derived state path not moved: %q", cfg.StorePath())
	}

	t.Setenv("CHORED_BUDGET_MINUTES", "90")
	t.Setenv("CHORED_BACKEND", "SQLITE")
	t.Setenv("CHORED_DEBUG", "yes")
	t.Setenv("CHORED_SCHEDULER_BUFFER", "4")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BudgetMinutes != 90 || cfg.Backend != "sqlite" || cfg.LogLevel != "debug" || cfg.SchedulerBuffer != 4 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadClampsBudget(t *testing.T) {
	isolate(t)
	t.Setenv("CHORED_BUDGET_MINUTES", "5000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BudgetMinutes != MaxBudgetMin {
		t.Fatalf("budget = %d, want %d", cfg.BudgetMinutes, MaxBudgetMin)
	}
	if ClampBudget(0) != MinBudgetMin || ClampBudget(-3) != MinBudgetMin {
		t.Fatal("expected low budgets to clamp to the minimum")
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CHORED_BUDGET_MINUTES", "lots")
	t.Setenv("CHORED_DEBUG", "maybe")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BudgetMinutes != DefaultBudgetMin || cfg.LogLevel != "info" {
		t.Fatalf("malformed env should be ignored: %+v", cfg)
	}
}

func TestLoadRejectsInvalidToml(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("budget_minutes = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestWriteBudgetKeepsOtherKeys(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.toml")
	if err := WriteBudget(path, 30); err != nil {
		t.Fatalf("write budget: %v", err)
	}
	if err := os.WriteFile(path, []byte("backend = \"json\"\nbudget_minutes = 30\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	if err := WriteBudget(path, 2000); err != nil {
		t.Fatalf("write budget: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "json" || cfg.BudgetMinutes != MaxBudgetMin {
		t.Fatalf("unexpected config after write: %+v", cfg)
	}
}
