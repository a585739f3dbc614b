// ABOUTME: Tests for the legacy flat-blob migration runner.
// ABOUTME: Verifies idempotence, fail-closed parsing, and per-id fan-out.
package migrate

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/store"
)

func setupTest(t *testing.T) (*FileLegacyStore, store.RecordStore, string) {
	t.Helper()
	dir := t.TempDir()
	rs, err := store.OpenSQLite(filepath.Join(dir, "logout.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { rs.Close() })
	return NewFileLegacyStore(dir), rs, dir
}

func writeLegacy(t *testing.T, dir, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal legacy blob: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, key+".json"), data, 0600); err != nil {
		t.Fatalf("write legacy blob: %v", err)
	}
}

func TestMigrateFansOutPerRecord(t *testing.T) {
	legacy, rs, dir := setupTest(t)
	writeLegacy(t, dir, LegacySessions, []models.WorkoutSession{
		{ID: "s1", StartTime: 100},
		{ID: "s2", StartTime: 200},
	})
	writeLegacy(t, dir, LegacyCustomExercises, []models.CustomExercise{
		{Exercise: models.Exercise{ID: "custom_a", Name: "A", Category: models.CategoryStrength}},
	})

	runner := NewRunner(legacy, rs, slog.Default())
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Sessions != 2 || summary.CustomExercises != 1 || summary.Workouts != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	records, err := rs.GetAll(context.Background(), store.StoreSessions)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	sessions := store.DecodeAll[models.WorkoutSession](slog.Default(), store.StoreSessions, records)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 migrated sessions, got %d", len(sessions))
	}

	// Legacy key must be gone after a successful run.
	if _, ok, _ := legacy.Get(LegacySessions); ok {
		t.Error("legacy sessions blob still present after migration")
	}
}

func TestMigrateTwiceIsNoOp(t *testing.T) {
	legacy, rs, dir := setupTest(t)
	writeLegacy(t, dir, LegacySessions, []models.WorkoutSession{{ID: "s1", StartTime: 100}})

	runner := NewRunner(legacy, rs, slog.Default())
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if second.Sessions != 0 {
		t.Errorf("second run migrated %d sessions, want 0", second.Sessions)
	}

	records, _ := rs.GetAll(context.Background(), store.StoreSessions)
	if len(records) != 1 {
		t.Errorf("expected 1 record after double run, got %d", len(records))
	}
}

func TestMigrateFailClosedOnUnparseableBlob(t *testing.T) {
	legacy, rs, dir := setupTest(t)
	if err := os.WriteFile(filepath.Join(dir, LegacyWorkouts+".json"), []byte("{broken"), 0600); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	runner := NewRunner(legacy, rs, slog.Default())
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Workouts != 0 {
		t.Errorf("corrupt blob migrated %d records", summary.Workouts)
	}

	// The unparseable blob must be left in place, not partially migrated.
	if _, ok, _ := legacy.Get(LegacyWorkouts); !ok {
		t.Error("corrupt legacy blob was deleted")
	}
	records, _ := rs.GetAll(context.Background(), store.StoreWorkouts)
	if len(records) != 0 {
		t.Errorf("expected no workout records, got %d", len(records))
	}
}

func TestMigrateLegacyWorkouts(t *testing.T) {
	legacy, rs, dir := setupTest(t)
	w := models.Weight(8250)
	writeLegacy(t, dir, LegacyWorkouts, []models.Workout{
		{
			ID:   "w1",
			Date: "2024-11-02",
			Exercises: []models.WorkoutExercise{
				{ExerciseID: "squat", ExerciseName: "Squat", Sets: []models.WorkoutSet{{Reps: 5, Weight: &w}}},
			},
		},
	})

	runner := NewRunner(legacy, rs, slog.Default())
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Workouts != 1 {
		t.Fatalf("Workouts = %d, want 1", summary.Workouts)
	}

	records, _ := rs.GetAll(context.Background(), store.StoreWorkouts)
	workouts := store.DecodeAll[models.Workout](slog.Default(), store.StoreWorkouts, records)
	if len(workouts) != 1 || workouts[0].ID != "w1" {
		t.Fatalf("unexpected migrated workouts: %+v", workouts)
	}
	if got := workouts[0].Exercises[0].Sets[0].Weight; got == nil || *got != 8250 {
		t.Errorf("weight not preserved: %v", got)
	}
}

func TestMigrateNothingToDo(t *testing.T) {
	legacy, rs, _ := setupTest(t)
	runner := NewRunner(legacy, rs, slog.Default())
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Workouts+summary.Sessions+summary.CustomExercises != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
