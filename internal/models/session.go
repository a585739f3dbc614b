// ABOUTME: WorkoutSession and ExerciseLog models for the session log.
// ABOUTME: At most one session store-wide may be active (end time unset).
package models

import (
	"github.com/google/uuid"
)

// ExerciseLog is one performed exercise within a session. Exercise name,
// category and force are denormalised at creation time so the log stays
// stable even if the catalog later changes or the exercise is deleted.
type ExerciseLog struct {
	ExerciseID   string    `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Category     Category  `json:"category"`
	Force        *Force    `json:"force,omitempty"`
	StartTime    int64     `json:"start_time"`
	EndTime      *int64    `json:"end_time,omitempty"`
	Weight       *Weight   `json:"weight_dg,omitempty"`
	Reps         *uint32   `json:"reps,omitempty"`
	Distance     *Distance `json:"distance_dam,omitempty"`
}

// IsCompleted reports whether the log has been confirmed (end time set).
func (l *ExerciseLog) IsCompleted() bool {
	return l.EndTime != nil
}

// DurationSeconds returns the recorded duration of a completed log.
// Returns false for logs still in progress.
func (l *ExerciseLog) DurationSeconds() (int64, bool) {
	if l.EndTime == nil {
		return 0, false
	}
	d := *l.EndTime - l.StartTime
	if d < 0 {
		d = 0
	}
	return d, true
}

// WorkoutSession is one workout from start to finish. A session transitions
// open to closed exactly once and is never reopened.
type WorkoutSession struct {
	ID                 string        `json:"id"`
	StartTime          int64         `json:"start_time"`
	EndTime            *int64        `json:"end_time,omitempty"`
	RestStartTime      *int64        `json:"rest_start_time,omitempty"`
	PendingExerciseIDs []string      `json:"pending_exercise_ids,omitempty"`
	ExerciseLogs       []ExerciseLog `json:"exercise_logs"`
	Version            int           `json:"version"`
}

// NewWorkoutSession creates a session starting at the given unix time.
func NewWorkoutSession(startTime int64) *WorkoutSession {
	return &WorkoutSession{
		ID:        uuid.NewString(),
		StartTime: startTime,
	}
}

// IsActive reports whether the session is still open.
func (s *WorkoutSession) IsActive() bool {
	return s.EndTime == nil
}

// IsCancelled reports whether finishing the session should discard it:
// an active session with no exercises logged is not worth keeping.
func (s *WorkoutSession) IsCancelled() bool {
	return s.IsActive() && len(s.ExerciseLogs) == 0
}

// DurationSeconds returns the closed session's length, or 0 while active.
func (s *WorkoutSession) DurationSeconds() int64 {
	if s.EndTime == nil {
		return 0
	}
	d := *s.EndTime - s.StartTime
	if d < 0 {
		d = 0
	}
	return d
}

// ExerciseIDs returns the distinct exercise ids of the session's logs in
// first-performed order, used to pre-seed a repeat session.
func (s *WorkoutSession) ExerciseIDs() []string {
	seen := make(map[string]bool, len(s.ExerciseLogs))
	var ids []string
	for _, l := range s.ExerciseLogs {
		if !seen[l.ExerciseID] {
			seen[l.ExerciseID] = true
			ids = append(ids, l.ExerciseID)
		}
	}
	return ids
}
