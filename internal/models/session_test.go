// ABOUTME: Tests for WorkoutSession and ExerciseLog model behaviour.
// ABOUTME: Covers lifecycle predicates, durations, and JSON compatibility.
package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewWorkoutSessionIsActive(t *testing.T) {
	s := NewWorkoutSession(1000)
	if s.ID == "" {
		t.Error("expected generated session id")
	}
	if !s.IsActive() {
		t.Error("new session should be active")
	}
	if !s.IsCancelled() {
		t.Error("active session with no logs should count as cancelled")
	}
}

func TestSessionCancelledOnlyWithoutLogs(t *testing.T) {
	s := NewWorkoutSession(1000)
	s.ExerciseLogs = append(s.ExerciseLogs, ExerciseLog{ExerciseID: "squat"})
	if s.IsCancelled() {
		t.Error("session with logs should not be cancelled")
	}
	end := int64(2000)
	s.EndTime = &end
	if s.IsActive() {
		t.Error("closed session should not be active")
	}
	if s.DurationSeconds() != 1000 {
		t.Errorf("DurationSeconds = %d, want 1000", s.DurationSeconds())
	}
}

func TestExerciseLogDuration(t *testing.T) {
	l := ExerciseLog{StartTime: 100}
	if _, ok := l.DurationSeconds(); ok {
		t.Error("in-progress log should have no duration")
	}
	end := int64(175)
	l.EndTime = &end
	d, ok := l.DurationSeconds()
	if !ok || d != 75 {
		t.Errorf("DurationSeconds = %d, %v; want 75, true", d, ok)
	}
}

func TestExerciseIDsDeduplicatesInOrder(t *testing.T) {
	s := NewWorkoutSession(0)
	for _, id := range []string{"squat", "bench", "squat", "run"} {
		s.ExerciseLogs = append(s.ExerciseLogs, ExerciseLog{ExerciseID: id})
	}
	ids := s.ExerciseIDs()
	want := []string{"squat", "bench", "run"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestSessionJSONOmitsAbsentOptionals(t *testing.T) {
	s := NewWorkoutSession(1234)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"end_time", "rest_start_time", "pending_exercise_ids"} {
		if _, present := raw[key]; present {
			t.Errorf("absent optional %q should be omitted, not null", key)
		}
	}
}

func TestSessionDecodeDefaultsVersion(t *testing.T) {
	// Older records carry no version field; it must decode as 0.
	var s WorkoutSession
	if err := json.Unmarshal([]byte(`{"id":"a","start_time":5,"exercise_logs":[]}`), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.Version != 0 {
		t.Errorf("Version = %d, want 0", s.Version)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{75, "1:15"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatSessionDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	cases := []struct {
		ts   time.Time
		want string
	}{
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "Today"},
		{time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC), "Yesterday"},
		{time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), "2 days ago"},
		{time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), "3 days ago"},
	}
	for _, c := range cases {
		if got := FormatSessionDate(c.ts.Unix(), now); got != c.want {
			t.Errorf("FormatSessionDate(%v) = %q, want %q", c.ts, got, c.want)
		}
	}
}
