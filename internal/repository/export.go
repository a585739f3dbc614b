// ABOUTME: Full-data export and import for backup and device-to-device moves.
// ABOUTME: JSON is the backup format; YAML is for human inspection.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/store"
)

// ExportData is the complete backup payload.
type ExportData struct {
	Version         string                  `json:"version" yaml:"version"`
	ExportedAt      time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool            string                  `json:"tool" yaml:"tool"`
	Sessions        []models.WorkoutSession `json:"sessions" yaml:"sessions"`
	CustomExercises []models.CustomExercise `json:"custom_exercises" yaml:"custom_exercises"`
	Workouts        []models.Workout        `json:"workouts" yaml:"workouts"`
}

func (r *Repository) exportData() *ExportData {
	return &ExportData{
		Version:         "1.0",
		ExportedAt:      r.clock.Now().UTC(),
		Tool:            "logout",
		Sessions:        r.Sessions(),
		CustomExercises: r.CustomExercises(),
		Workouts:        r.Workouts(),
	}
}

// ExportJSON exports all user data as JSON, suitable for backup/restore.
func (r *Repository) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.exportData(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// ExportYAML exports all user data as YAML.
func (r *Repository) ExportYAML() ([]byte, error) {
	data, err := yaml.Marshal(r.exportData())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// ImportJSON restores data from a JSON backup. Records sharing an id with
// existing data are overwritten; everything else is merged in.
func (r *Repository) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var backup ExportData
	if err := json.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("failed to parse backup: %w", err)
	}

	ctx = context.WithoutCancel(ctx)
	count := 0
	for i := range backup.Sessions {
		s := &backup.Sessions[i]
		if err := store.PutJSON(ctx, r.rs, store.StoreSessions, s.ID, s); err != nil {
			return count, err
		}
		count++
	}
	for i := range backup.CustomExercises {
		ce := &backup.CustomExercises[i]
		if err := store.PutJSON(ctx, r.rs, store.StoreCustomExercises, ce.ID, ce); err != nil {
			return count, err
		}
		count++
	}
	for i := range backup.Workouts {
		w := &backup.Workouts[i]
		if err := store.PutJSON(ctx, r.rs, store.StoreWorkouts, w.ID, w); err != nil {
			return count, err
		}
		count++
	}

	// Rebuild projections so the imported records are visible immediately.
	if err := r.Load(ctx); err != nil {
		return count, err
	}
	return count, nil
}
