// ABOUTME: One-shot migration of legacy flat-blob collections into the record store.
// ABOUTME: Idempotent, fail-closed: an unparseable blob is left untouched.
package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/store"
)

// Legacy flat storage keys. Each held one serialized collection under one
// key in the old format.
const (
	LegacyWorkouts        = "workouts"
	LegacySessions        = "sessions"
	LegacyCustomExercises = "custom_exercises"
)

// LegacyStore is the old flat key-value storage the app wrote before the
// record store existed. Consumed only by the migration, then emptied.
type LegacyStore interface {
	// Get returns the blob under key, reporting whether it exists.
	Get(key string) ([]byte, bool, error)
	// Delete removes the key. Absent keys are not an error.
	Delete(key string) error
}

// Summary holds counts of migrated records per collection.
type Summary struct {
	Workouts        int
	Sessions        int
	CustomExercises int
}

// Runner transfers legacy flat-blob records into the record store.
type Runner struct {
	legacy LegacyStore
	rs     store.RecordStore
	logger *slog.Logger
}

// NewRunner creates a migration runner.
func NewRunner(legacy LegacyStore, rs store.RecordStore, logger *slog.Logger) *Runner {
	return &Runner{legacy: legacy, rs: rs, logger: logger}
}

// Run executes the migration. Safe to call on every startup: after a
// successful run the legacy keys are gone and the second run is a no-op.
// A blob that fails to parse as a whole is left in place and no per-record
// migration is attempted for it.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	if err := migrateCollection(ctx, r, LegacyWorkouts, store.StoreWorkouts,
		func(w models.Workout) string { return w.ID }, &summary.Workouts); err != nil {
		return nil, err
	}
	if err := migrateCollection(ctx, r, LegacySessions, store.StoreSessions,
		func(s models.WorkoutSession) string { return s.ID }, &summary.Sessions); err != nil {
		return nil, err
	}
	if err := migrateCollection(ctx, r, LegacyCustomExercises, store.StoreCustomExercises,
		func(c models.CustomExercise) string { return c.ID }, &summary.CustomExercises); err != nil {
		return nil, err
	}

	return summary, nil
}

// migrateCollection moves one legacy blob: parse the whole collection, put
// each member under its own id, then delete the legacy key. The key is
// only deleted once every member is durably stored, so a failure part-way
// leaves a rerunnable state (puts are replays, never duplicates).
func migrateCollection[T any](ctx context.Context, r *Runner, legacyKey, storeName string, idOf func(T) string, count *int) error {
	blob, ok, err := r.legacy.Get(legacyKey)
	if err != nil {
		return fmt.Errorf("read legacy %q: %w", legacyKey, err)
	}
	if !ok {
		return nil
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		r.logger.Warn("legacy blob unparseable, leaving untouched",
			slog.String("key", legacyKey),
			slog.String("error", err.Error()))
		return nil
	}

	for _, item := range items {
		if err := store.PutJSON(ctx, r.rs, storeName, idOf(item), item); err != nil {
			return fmt.Errorf("migrate %q record: %w", legacyKey, err)
		}
		*count++
	}

	if err := r.legacy.Delete(legacyKey); err != nil {
		return fmt.Errorf("delete legacy %q: %w", legacyKey, err)
	}
	r.logger.Info("migrated legacy collection",
		slog.String("key", legacyKey),
		slog.Int("records", len(items)))
	return nil
}
