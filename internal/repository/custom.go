// ABOUTME: Custom exercise CRUD on top of the record store.
// ABOUTME: Custom exercises are user-owned and never touched by catalog refreshes.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gfauredev/logout/internal/catalog"
	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/store"
)

// CustomExercises returns the user's custom exercises.
func (r *Repository) CustomExercises() []models.CustomExercise {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CustomExercise, len(r.custom))
	copy(out, r.custom)
	return out
}

// GetCustomExercise returns the custom exercise with the given id.
func (r *Repository) GetCustomExercise(id string) (*models.CustomExercise, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.custom {
		if r.custom[i].ID == id {
			out := r.custom[i]
			return &out, true
		}
	}
	return nil, false
}

// AddCustomExercise validates and persists a new custom exercise.
func (r *Repository) AddCustomExercise(ctx context.Context, ce *models.CustomExercise) error {
	if !ce.Validate() {
		return fmt.Errorf("invalid custom exercise %q", ce.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := store.PutJSON(context.WithoutCancel(ctx), r.rs, store.StoreCustomExercises, ce.ID, ce); err != nil {
		return err
	}
	r.custom = append(r.custom, *ce)
	r.logger.Info("custom exercise added",
		slog.String("id", ce.ID), slog.String("name", ce.Name))
	return nil
}

// UpdateCustomExercise replaces an existing custom exercise.
func (r *Repository) UpdateCustomExercise(ctx context.Context, ce *models.CustomExercise) error {
	if !ce.Validate() {
		return fmt.Errorf("invalid custom exercise %q", ce.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.custom {
		if r.custom[i].ID == ce.ID {
			if err := store.PutJSON(context.WithoutCancel(ctx), r.rs, store.StoreCustomExercises, ce.ID, ce); err != nil {
				return err
			}
			r.custom[i] = *ce
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownExercise, ce.ID)
}

// DeleteCustomExercise removes a custom exercise. Idempotent.
func (r *Repository) DeleteCustomExercise(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.rs.Delete(context.WithoutCancel(ctx), store.StoreCustomExercises, id); err != nil {
		return err
	}
	for i := range r.custom {
		if r.custom[i].ID == id {
			r.custom = append(r.custom[:i], r.custom[i+1:]...)
			break
		}
	}
	return nil
}

// SearchCustomExercises filters custom exercises with the same free-text
// semantics as the catalog search.
func (r *Repository) SearchCustomExercises(query string) []models.CustomExercise {
	all := r.CustomExercises()
	flat := make([]models.Exercise, len(all))
	for i := range all {
		flat[i] = all[i].Exercise
	}
	matched := make(map[string]bool)
	for _, ex := range catalog.SearchExercises(flat, query) {
		matched[ex.ID] = true
	}
	var out []models.CustomExercise
	for _, ce := range all {
		if matched[ce.ID] {
			out = append(out, ce)
		}
	}
	return out
}
