// ABOUTME: RecordStore contract over interchangeable persistence backends.
// ABOUTME: Four named collections keyed by record id, JSON record bodies.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Named record collections. Each holds JSON records keyed by the record's
// "id" field.
const (
	StoreWorkouts        = "workouts"
	StoreSessions        = "sessions"
	StoreCustomExercises = "custom_exercises"
	StoreExercises       = "exercises"
)

// AllStores lists every named collection a backend must provide.
var AllStores = []string{StoreWorkouts, StoreSessions, StoreCustomExercises, StoreExercises}

// ErrPersistence marks backend I/O or serialization failures. A write that
// fails with it is treated as not applied.
var ErrPersistence = errors.New("persistence failure")

// ErrUnknownStore is returned for store names outside AllStores.
var ErrUnknownStore = errors.New("unknown store")

// RecordStore is the persistence contract shared by both backends. Each
// call is atomic with respect to its single key; concurrent Puts to
// different keys in the same store must not corrupt each other. Backend
// choice is a startup configuration decision invisible to callers.
type RecordStore interface {
	// Put durably stores a record under its key, replacing any previous
	// value. Either fully durable or failed with ErrPersistence.
	Put(ctx context.Context, storeName, key string, record []byte) error

	// Delete removes a record. Deleting an absent key is not an error.
	Delete(ctx context.Context, storeName, key string) error

	// GetAll returns every record body in the store, in key order.
	GetAll(ctx context.Context, storeName string) ([][]byte, error)

	Close() error
}

func validStore(storeName string) error {
	for _, s := range AllStores {
		if s == storeName {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStore, storeName)
}

// PutJSON marshals a record and stores it under the given key.
func PutJSON(ctx context.Context, rs RecordStore, storeName, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w: %v", storeName, key, ErrPersistence, err)
	}
	return rs.Put(ctx, storeName, key, data)
}

// DecodeAll unmarshals every record body into T, skipping and logging any
// record that fails to deserialize. One corrupt record must never prevent
// loading the rest.
func DecodeAll[T any](logger *slog.Logger, storeName string, records [][]byte) []T {
	out := make([]T, 0, len(records))
	for _, data := range records {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			logger.Warn("skipping corrupt record",
				slog.String("store", storeName),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, v)
	}
	return out
}
