package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// StorageConfig selects and tunes the persistent key-value substrate.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "memory".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file for the sqlite backend.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyPrefix namespaces every stored key.
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`

	// QuotaBytes caps the total stored size. Zero disables the cap.
	QuotaBytes int64 `mapstructure:"quota_bytes" yaml:"quota_bytes"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// ReminderConfig controls the reminder dispatcher.
type ReminderConfig struct {
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage   StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Log       LogConfig      `mapstructure:"log" yaml:"log"`
	Reminders ReminderConfig `mapstructure:"reminders" yaml:"reminders"`
}

// DefaultQuotaBytes approximates the capacity of browser local storage.
const DefaultQuotaBytes = 5 * 1024 * 1024

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tracker", "config.yaml")
}

// DefaultDataPath returns the default SQLite file location.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tracker.db")
	}
	return filepath.Join(home, ".local", "share", "tracker", "tracker.db")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Path:       DefaultDataPath(),
			KeyPrefix:  "productivity",
			QuotaBytes: DefaultQuotaBytes,
		},
		Log: LogConfig{
			Level: "info",
		},
		Reminders: ReminderConfig{
			IntervalSec: 60,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	def := DefaultAppConfig()
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.key_prefix", def.Storage.KeyPrefix)
	v.SetDefault("storage.quota_bytes", def.Storage.QuotaBytes)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("reminders.interval_sec", def.Reminders.IntervalSec)

	// TRACKER_STORAGE_PATH overrides storage.path, and so on.
	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file is fine: defaults and environment still apply.
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Backend != BackendSQLite && cfg.Storage.Backend != BackendMemory {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Reminders.IntervalSec <= 0 {
		cfg.Reminders.IntervalSec = def.Reminders.IntervalSec
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"backend":     cfg.Storage.Backend,
		"path":        cfg.Storage.Path,
		"key_prefix":  cfg.Storage.KeyPrefix,
		"quota_bytes": cfg.Storage.QuotaBytes,
	})
	v.Set("log", map[string]any{
		"level":       cfg.Log.Level,
		"development": cfg.Log.Development,
	})
	v.Set("reminders", map[string]any{
		"interval_sec": cfg.Reminders.IntervalSec,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
