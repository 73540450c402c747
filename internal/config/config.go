// Package config resolves runtime settings from defaults, an optional TOML
// file and CHORED_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	FileName         = "config.toml"
	DefaultBudgetMin = 60
	MinBudgetMin     = 1
	MaxBudgetMin     = 1440
)

var ErrInvalidConfig = errors.New("config: invalid config file")

type Config struct {
	DataDir         string `toml:"data_dir"`
	Backend         string `toml:"backend"`
	DBPath          string `toml:"db_path"`
	StatePath       string `toml:"state_path"`
	BudgetMinutes   int    `toml:"budget_minutes"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	SchedulerBuffer int    `toml:"scheduler_buffer"`
}

func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		DataDir:         dataDir,
		Backend:         "sqlite",
		DBPath:          filepath.Join(dataDir, "chored.db"),
		StatePath:       filepath.Join(dataDir, "state.json"),
		BudgetMinutes:   DefaultBudgetMin,
		LogLevel:        "info",
		LogFile:         filepath.Join(dataDir, "chored.log"),
		SchedulerBuffer: 16,
	}
}

// Load resolves the effective configuration. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	fileCfg, err := readFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	if fileCfg != nil {
		cfg = merge(cfg, *fileCfg)
	}
	cfg = FromEnv(cfg)
	cfg.BudgetMinutes = ClampBudget(cfg.BudgetMinutes)
	return cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/chored/config.toml, falling back to
// ~/.config. CHORED_CONFIG overrides it.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv("CHORED_CONFIG")); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "chored", FileName)
}

func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".chored"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "chored")
}

func readFile(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out Config
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return &out, nil
}

// merge overlays non-zero fields of over onto base. A data_dir override moves
// the derived paths unless they are set explicitly too.
func merge(base, over Config) Config {
	if over.DataDir != "" {
		base.DataDir = over.DataDir
		base.DBPath = filepath.Join(over.DataDir, "chored.db")
		base.StatePath = filepath.Join(over.DataDir, "state.json")
		base.LogFile = filepath.Join(over.DataDir, "chored.log")
	}
	if over.Backend != "" {
		base.Backend = over.Backend
	}
	if over.DBPath != "" {
		base.DBPath = over.DBPath
	}
	if over.StatePath != "" {
		base.StatePath = over.StatePath
	}
	if over.BudgetMinutes != 0 {
		base.BudgetMinutes = over.BudgetMinutes
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFile != "" {
		base.LogFile = over.LogFile
	}
	if over.SchedulerBuffer > 0 {
		base.SchedulerBuffer = over.SchedulerBuffer
	}
	return base
}

func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("CHORED_DATA_DIR")); v != "" {
		cfg = merge(cfg, Config{DataDir: v})
	}
	if v := strings.TrimSpace(os.Getenv("CHORED_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHORED_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("CHORED_STATE_FILE")); v != "" {
		cfg.StatePath = v
	}
	if v, ok := getEnvInt("CHORED_BUDGET_MINUTES"); ok && v > 0 {
		cfg.BudgetMinutes = v
	}
	if v := strings.TrimSpace(os.Getenv("CHORED_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvBool("CHORED_DEBUG"); ok && v {
		cfg.LogLevel = "debug"
	}
	if v := strings.TrimSpace(os.Getenv("CHORED_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v, ok := getEnvInt("CHORED_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// StorePath is the location the configured backend reads and writes.
func (c Config) StorePath() string {
	if c.Backend == "json" {
		return c.StatePath
	}
	return c.DBPath
}

func ClampBudget(v int) int {
	return min(max(v, MinBudgetMin), MaxBudgetMin)
}

// WriteBudget records budget_minutes in the TOML file at path, keeping any
// other keys already there.
func WriteBudget(path string, minutes int) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	raw["budget_minutes"] = ClampBudget(minutes)

	out, err := toml.Marshal(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
