// ABOUTME: Pure search helpers over the in-memory catalog projection.
// ABOUTME: Case-insensitive substring match across the descriptive fields.
package catalog

import (
	"strings"

	"github.com/gfauredev/logout/internal/models"
)

// Search returns every exercise whose name, muscles, category, force,
// equipment or level contains the query, case-insensitively. An empty
// query matches everything.
func (c *Cache) Search(query string) []models.Exercise {
	return SearchExercises(c.Exercises(), query)
}

// SearchExercises filters a slice of exercises by a free-text query.
func SearchExercises(exercises []models.Exercise, query string) []models.Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return exercises
	}
	var matches []models.Exercise
	for _, ex := range exercises {
		if exerciseMatches(&ex, q) {
			matches = append(matches, ex)
		}
	}
	return matches
}

func exerciseMatches(ex *models.Exercise, q string) bool {
	if strings.Contains(strings.ToLower(ex.Name), q) {
		return true
	}
	for _, m := range ex.PrimaryMuscles {
		if strings.Contains(strings.ToLower(m), q) {
			return true
		}
	}
	for _, m := range ex.SecondaryMuscles {
		if strings.Contains(strings.ToLower(m), q) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(string(ex.Category)), q) {
		return true
	}
	if ex.Force != nil && strings.Contains(strings.ToLower(string(*ex.Force)), q) {
		return true
	}
	if ex.Equipment != nil && strings.Contains(strings.ToLower(*ex.Equipment), q) {
		return true
	}
	return strings.Contains(strings.ToLower(ex.Level), q)
}
