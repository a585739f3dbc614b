// ABOUTME: Exercise reference-catalog entity, CustomExercise, and their enums.
// ABOUTME: JSON field names match the free-exercise-db catalog schema.
package models

import (
	"github.com/google/uuid"
)

// Category classifies an exercise. Values match the remote catalog.
type Category string

const (
	CategoryCardio         Category = "cardio"
	CategoryStrength       Category = "strength"
	CategoryStretching     Category = "stretching"
	CategoryPowerlifting   Category = "powerlifting"
	CategoryStrongman      Category = "strongman"
	CategoryPlyometrics    Category = "plyometrics"
	CategoryOlympicLifting Category = "olympic weightlifting"
)

// AllCategories returns all valid exercise categories.
var AllCategories = []Category{
	CategoryCardio, CategoryStrength, CategoryStretching,
	CategoryPowerlifting, CategoryStrongman, CategoryPlyometrics,
	CategoryOlympicLifting,
}

// IsValidCategory checks if a string is a valid category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Force describes the movement type of an exercise.
type Force string

const (
	ForcePull   Force = "pull"
	ForcePush   Force = "push"
	ForceStatic Force = "static"
)

// IsValidForce checks if a string is a valid force type.
func IsValidForce(s string) bool {
	return s == string(ForcePull) || s == string(ForcePush) || s == string(ForceStatic)
}

// HasReps reports whether exercises with this force type are counted in
// repetitions. Static holds are timed, not counted.
func (f Force) HasReps() bool {
	return f == ForcePull || f == ForcePush
}

// Exercise is one entry of the reference catalog. Immutable once fetched;
// the catalog is replaced wholesale on refresh, never patched per field.
type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Force            *Force   `json:"force,omitempty"`
	Level            string   `json:"level"`
	Mechanic         *string  `json:"mechanic,omitempty"`
	Equipment        *string  `json:"equipment,omitempty"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Category         Category `json:"category"`
	Images           []string `json:"images"`
}

// Validate reports whether a downloaded exercise record is acceptable.
// The remote catalog is untrusted input; records missing an id or name or
// carrying unknown enum values are rejected before they reach the cache.
func (e *Exercise) Validate() bool {
	if e.ID == "" || e.Name == "" {
		return false
	}
	if !IsValidCategory(string(e.Category)) {
		return false
	}
	if e.Force != nil && !IsValidForce(string(*e.Force)) {
		return false
	}
	return true
}

// CustomExercisePrefix marks locally generated custom-exercise ids so they
// can never collide with catalog ids.
const CustomExercisePrefix = "custom_"

// CustomExercise is a user-authored exercise with the same descriptive
// shape as a catalog Exercise. Owned solely by the local store and mutable.
type CustomExercise struct {
	Exercise
	Version int `json:"version"`
}

// NewCustomExercise creates a custom exercise with a generated local id.
func NewCustomExercise(name string, category Category) *CustomExercise {
	return &CustomExercise{
		Exercise: Exercise{
			ID:       CustomExercisePrefix + uuid.NewString(),
			Name:     name,
			Category: category,
		},
	}
}

// WithForce sets the force type.
func (c *CustomExercise) WithForce(f Force) *CustomExercise {
	c.Force = &f
	return c
}

// WithEquipment sets the equipment description.
func (c *CustomExercise) WithEquipment(equipment string) *CustomExercise {
	c.Equipment = &equipment
	return c
}

// WithMuscles sets the primary and secondary muscle lists.
func (c *CustomExercise) WithMuscles(primary, secondary []string) *CustomExercise {
	c.PrimaryMuscles = primary
	c.SecondaryMuscles = secondary
	return c
}
