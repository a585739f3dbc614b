// ABOUTME: Tests for exercise argument resolution on the CLI.
// ABOUTME: Covers custom-exercise priority over catalog matches.
package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/gfauredev/logout/internal/catalog"
	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/repository"
	"github.com/gfauredev/logout/internal/store"
)

type staticFetcher struct {
	exercises []models.Exercise
}

func (f *staticFetcher) Fetch(ctx context.Context) ([]models.Exercise, error) {
	return f.exercises, nil
}

// setupResolveEnv wires the package globals the commands resolve through.
func setupResolveEnv(t *testing.T) {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	rs, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { rs.Close() })

	push := models.ForcePush
	stamp := catalog.NewFetchStamp(t.TempDir())
	cache = catalog.New(rs, &staticFetcher{exercises: []models.Exercise{
		{ID: "Pushups", Name: "Pushups", Force: &push, Level: "beginner",
			PrimaryMuscles: []string{"chest"}, Category: models.CategoryStrength},
		{ID: "Decline_Pushups", Name: "Decline Pushups", Force: &push, Level: "intermediate",
			PrimaryMuscles: []string{"chest"}, Category: models.CategoryStrength},
	}}, stamp, quiet)
	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("catalog Load() error = %v", err)
	}

	repo = repository.New(rs, cache, quiet)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("repo Load() error = %v", err)
	}
}

func TestResolveExerciseArgPrefersCustom(t *testing.T) {
	setupResolveEnv(t)
	ctx := context.Background()

	ce := models.NewCustomExercise("Decline Pushups", models.CategoryStrength)
	if err := repo.AddCustomExercise(ctx, ce); err != nil {
		t.Fatalf("AddCustomExercise() error = %v", err)
	}

	// The name collides with a catalog exercise. The user's own wins.
	got, err := resolveExerciseArg("decline pushups")
	if err != nil {
		t.Fatalf("resolveExerciseArg(decline pushups) error = %v", err)
	}
	if got != ce.ID {
		t.Errorf("resolveExerciseArg(decline pushups) = %q, want custom id %q", got, ce.ID)
	}

	// An exact custom id still resolves directly.
	got, err = resolveExerciseArg(ce.ID)
	if err != nil {
		t.Fatalf("resolveExerciseArg(custom id) error = %v", err)
	}
	if got != ce.ID {
		t.Errorf("resolveExerciseArg(custom id) = %q, want %q", got, ce.ID)
	}
}

func TestResolveExerciseArgCatalogFallback(t *testing.T) {
	setupResolveEnv(t)

	got, err := resolveExerciseArg("decline")
	if err != nil {
		t.Fatalf("resolveExerciseArg(decline) error = %v", err)
	}
	if got != "Decline_Pushups" {
		t.Errorf("resolveExerciseArg(decline) = %q, want Decline_Pushups", got)
	}

	if _, err := resolveExerciseArg("push"); err == nil {
		t.Error("resolveExerciseArg(push) resolved an ambiguous query")
	}
}
