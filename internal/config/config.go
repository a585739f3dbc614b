// ABOUTME: LogOut configuration management with backend selection.
// ABOUTME: Handles settings, data paths, and the record-store factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gfauredev/logout/internal/store"
)

// DefaultCatalogBaseURL is the exercise database fork all catalog data
// (JSON, images) is served from.
const DefaultCatalogBaseURL = "https://raw.githubusercontent.com/gfauredev/free-exercise-db/main/"

// DefaultRestDuration is the rest-timer threshold used when the config
// does not override it.
const DefaultRestDuration = 30 * time.Second

// DefaultRefreshInterval is how old the cached exercise catalog may get
// before a background refresh is triggered.
const DefaultRefreshInterval = 24 * time.Hour

// Config stores logout tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts
	// logout.db here, Badger puts its value log in a badger/ subfolder.
	// Supports ~ expansion. Defaults to ~/.local/share/logout.
	DataDir string `json:"data_dir,omitempty"`

	// CatalogBaseURL overrides the exercise database origin.
	CatalogBaseURL string `json:"catalog_base_url,omitempty"`

	// RefreshIntervalHours overrides the catalog staleness interval.
	RefreshIntervalHours int `json:"refresh_interval_hours,omitempty"`

	// RestDurationSeconds overrides the default rest-timer threshold.
	RestDurationSeconds int `json:"rest_duration_seconds,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCatalogBaseURL returns the catalog origin, defaulting to the
// free-exercise-db fork.
func (c *Config) GetCatalogBaseURL() string {
	if c.CatalogBaseURL == "" {
		return DefaultCatalogBaseURL
	}
	return c.CatalogBaseURL
}

// GetRefreshInterval returns the catalog staleness interval.
func (c *Config) GetRefreshInterval() time.Duration {
	if c.RefreshIntervalHours <= 0 {
		return DefaultRefreshInterval
	}
	return time.Duration(c.RefreshIntervalHours) * time.Hour
}

// GetRestDuration returns the rest-timer threshold.
func (c *Config) GetRestDuration() time.Duration {
	if c.RestDurationSeconds <= 0 {
		return DefaultRestDuration
	}
	return time.Duration(c.RestDurationSeconds) * time.Second
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "logout")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates a RecordStore implementation based on the configured
// backend. The repository layer never observes which one it got.
func (c *Config) OpenStore() (store.RecordStore, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return store.OpenSQLite(filepath.Join(dataDir, "logout.db"))
	case "badger":
		return store.OpenBadger(filepath.Join(dataDir, "badger"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "logout", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
