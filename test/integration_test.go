// ABOUTME: Integration tests for logout CLI.
// ABOUTME: Builds the binary and walks a full workout from start to export.
package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// catalogPayload is a minimal valid exercise catalog for the local server.
const catalogPayload = `[
  {"id": "Pushups", "name": "Pushups", "force": "push", "level": "beginner",
   "primaryMuscles": ["chest"], "secondaryMuscles": [], "instructions": [],
   "category": "strength", "images": []},
  {"id": "Pullups", "name": "Pullups", "force": "pull", "level": "intermediate",
   "primaryMuscles": ["lats"], "secondaryMuscles": [], "instructions": [],
   "category": "strength", "images": []}
]`

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "logout")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/logout")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Serve the catalog locally so the test never touches the network.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dist/exercises.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	configHome := t.TempDir()
	dataHome := t.TempDir()
	configDir := filepath.Join(configHome, "logout")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	cfg, _ := json.Marshal(map[string]any{
		"backend":          "sqlite",
		"catalog_base_url": srv.URL + "/",
	})
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), cfg, 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+configHome,
			"XDG_DATA_HOME="+dataHome,
			"NO_COLOR=1")
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Start a session
	output, err := run("session", "start")
	if err != nil {
		t.Fatalf("Failed to start session: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Session started") {
		t.Errorf("Expected 'Session started' in output, got: %s", output)
	}

	// Starting a second one must fail
	output, err = run("session", "start")
	if err == nil {
		t.Errorf("Second session start should fail, got: %s", output)
	}

	// Log a set and confirm it
	output, err = run("log", "Pushups")
	if err != nil {
		t.Fatalf("Failed to start exercise: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Started Pushups") {
		t.Errorf("Expected 'Started Pushups' in output, got: %s", output)
	}

	output, err = run("log", "done", "--reps", "15")
	if err != nil {
		t.Fatalf("Failed to finish set: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Pushups logged") {
		t.Errorf("Expected 'Pushups logged' in output, got: %s", output)
	}

	// Unknown exercises are rejected
	output, err = run("log", "No Such Movement")
	if err == nil {
		t.Errorf("Unknown exercise should fail, got: %s", output)
	}

	// Custom exercises resolve in logging
	output, err = run("exercise", "custom", "add", "Weighted Carry", "--category", "strongman")
	if err != nil {
		t.Fatalf("Failed to add custom exercise: %v\n%s", err, output)
	}
	output, err = run("log", "Weighted Carry")
	if err != nil {
		t.Fatalf("Failed to log custom exercise: %v\n%s", err, output)
	}
	output, err = run("log", "done", "--weight", "40")
	if err != nil {
		t.Fatalf("Failed to finish custom set: %v\n%s", err, output)
	}

	// Finish and list
	output, err = run("session", "finish")
	if err != nil {
		t.Fatalf("Failed to finish session: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Session finished") {
		t.Errorf("Expected 'Session finished' in output, got: %s", output)
	}

	output, err = run("session", "list")
	if err != nil {
		t.Fatalf("Failed to list sessions: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2 exercises") {
		t.Errorf("Expected '2 exercises' in output, got: %s", output)
	}

	// Catalog search serves from the cache
	output, err = run("exercise", "search", "pull")
	if err != nil {
		t.Fatalf("Failed to search: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Pullups") {
		t.Errorf("Expected 'Pullups' in output, got: %s", output)
	}

	// Export round-trips through import
	backupPath := filepath.Join(t.TempDir(), "backup.json")
	output, err = run("export", "json", "-o", backupPath)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	output, err = run("import", backupPath)
	if err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Imported") {
		t.Errorf("Expected 'Imported' in output, got: %s", output)
	}
}

func TestBadgerBackend(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "logout")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/logout")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	configHome := t.TempDir()
	dataHome := t.TempDir()
	configDir := filepath.Join(configHome, "logout")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	cfg, _ := json.Marshal(map[string]any{
		"backend":          "badger",
		"catalog_base_url": srv.URL + "/",
	})
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), cfg, 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+configHome,
			"XDG_DATA_HOME="+dataHome,
			"NO_COLOR=1")
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// The same workflow must behave identically on the Badger backend.
	if output, err := run("session", "start"); err != nil {
		t.Fatalf("Failed to start session: %v\n%s", err, output)
	}
	if output, err := run("log", "Pushups"); err != nil {
		t.Fatalf("Failed to log: %v\n%s", err, output)
	}
	if output, err := run("session", "finish"); err != nil {
		t.Fatalf("Failed to finish: %v\n%s", err, output)
	}

	output, err := run("session", "list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1 exercises") {
		t.Errorf("Expected '1 exercises' in output, got: %s", output)
	}
}
