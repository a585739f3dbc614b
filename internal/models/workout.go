// ABOUTME: Legacy Workout record shape kept for backward compatibility.
// ABOUTME: Distinct from WorkoutSession; migrated but no longer written.
package models

// WorkoutSet is one set within a legacy workout entry.
type WorkoutSet struct {
	Reps     uint32  `json:"reps"`
	Weight   *Weight `json:"weight,omitempty"`
	Duration *uint32 `json:"duration,omitempty"`
}

// WorkoutExercise is one exercise with its sets in a legacy workout.
type WorkoutExercise struct {
	ExerciseID   string       `json:"exercise_id"`
	ExerciseName string       `json:"exercise_name"`
	Sets         []WorkoutSet `json:"sets"`
	Notes        *string      `json:"notes,omitempty"`
}

// Workout is the older day-based log format. It coexists with
// WorkoutSession as a separate entity with its own lifecycle: existing
// records are migrated into the record store and remain readable, but new
// logging goes through WorkoutSession.
type Workout struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"`
	Exercises []WorkoutExercise `json:"exercises"`
	Notes     *string           `json:"notes,omitempty"`
	Version   int               `json:"version"`
}
