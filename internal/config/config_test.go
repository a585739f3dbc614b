// ABOUTME: Tests for config defaults, path expansion, and backend factory.
// ABOUTME: Uses t.TempDir and environment overrides, no real home writes.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gfauredev/logout/internal/store"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want sqlite", got)
	}
	if got := cfg.GetRefreshInterval(); got != 24*time.Hour {
		t.Errorf("GetRefreshInterval() = %v, want 24h", got)
	}
	if got := cfg.GetRestDuration(); got != 30*time.Second {
		t.Errorf("GetRestDuration() = %v, want 30s", got)
	}
	if got := cfg.GetCatalogBaseURL(); got != DefaultCatalogBaseURL {
		t.Errorf("GetCatalogBaseURL() = %q", got)
	}
}

func TestOverrides(t *testing.T) {
	cfg := &Config{
		Backend:              "badger",
		RefreshIntervalHours: 48,
		RestDurationSeconds:  90,
		CatalogBaseURL:       "http://localhost:8080/",
	}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q", got)
	}
	if got := cfg.GetRefreshInterval(); got != 48*time.Hour {
		t.Errorf("GetRefreshInterval() = %v", got)
	}
	if got := cfg.GetRestDuration(); got != 90*time.Second {
		t.Errorf("GetRestDuration() = %v", got)
	}
	if got := cfg.GetCatalogBaseURL(); got != "http://localhost:8080/" {
		t.Errorf("GetCatalogBaseURL() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}

func TestOpenStoreSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	sqliteCfg := &Config{Backend: "sqlite", DataDir: dir}
	s, err := sqliteCfg.OpenStore()
	if err != nil {
		t.Fatalf("OpenStore(sqlite) failed: %v", err)
	}
	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Errorf("expected *store.SQLiteStore, got %T", s)
	}
	s.Close()

	badgerCfg := &Config{Backend: "badger", DataDir: t.TempDir()}
	b, err := badgerCfg.OpenStore()
	if err != nil {
		t.Fatalf("OpenStore(badger) failed: %v", err)
	}
	if _, ok := b.(*store.BadgerStore); !ok {
		t.Errorf("expected *store.BadgerStore, got %T", b)
	}
	b.Close()

	if _, err := (&Config{Backend: "csv"}).OpenStore(); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestLoadMissingConfigReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := &Config{Backend: "badger", RestDurationSeconds: 45}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Backend != "badger" || got.RestDurationSeconds != 45 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
