// ABOUTME: Session repository enforcing the single-active-session rule.
// ABOUTME: Every mutation persists first, then updates the in-memory projection.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/gfauredev/logout/internal/catalog"
	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/store"
)

var (
	// ErrActiveSessionExists means a session with no end time already exists.
	ErrActiveSessionExists = errors.New("an active session already exists")
	// ErrUnknownExercise means the exercise id resolves against neither the
	// catalog nor the custom-exercise store.
	ErrUnknownExercise = errors.New("unknown exercise")
	// ErrIndexOutOfRange means a log index does not exist in the session.
	ErrIndexOutOfRange = errors.New("log index out of range")
	// ErrSessionNotFound means no session has the given id.
	ErrSessionNotFound = errors.New("session not found")
)

// Repository owns the workout session and custom exercise projections.
// It is the sole mutator of those stores; readers get consistent
// snapshots and every write goes through the record store before the
// projection is updated.
type Repository struct {
	rs      store.RecordStore
	catalog *catalog.Cache
	clock   clockwork.Clock
	logger  *slog.Logger

	mu       sync.Mutex
	sessions []models.WorkoutSession
	custom   []models.CustomExercise
	workouts []models.Workout
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock injects the clock used for session timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(r *Repository) { r.clock = c }
}

// New creates a repository. Call Load before serving reads.
func New(rs store.RecordStore, cat *catalog.Cache, logger *slog.Logger, opts ...Option) *Repository {
	r := &Repository{
		rs:      rs,
		catalog: cat,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load rebuilds the in-memory projections from the record store. It must
// run after migration and before any read.
func (r *Repository) Load(ctx context.Context) error {
	sessionRecords, err := r.rs.GetAll(ctx, store.StoreSessions)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	customRecords, err := r.rs.GetAll(ctx, store.StoreCustomExercises)
	if err != nil {
		return fmt.Errorf("loading custom exercises: %w", err)
	}
	workoutRecords, err := r.rs.GetAll(ctx, store.StoreWorkouts)
	if err != nil {
		return fmt.Errorf("loading workouts: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = store.DecodeAll[models.WorkoutSession](r.logger, store.StoreSessions, sessionRecords)
	r.custom = store.DecodeAll[models.CustomExercise](r.logger, store.StoreCustomExercises, customRecords)
	r.workouts = store.DecodeAll[models.Workout](r.logger, store.StoreWorkouts, workoutRecords)
	sortSessionsNewestFirst(r.sessions)
	return nil
}

func sortSessionsNewestFirst(sessions []models.WorkoutSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime > sessions[j].StartTime
	})
}

// Sessions returns all sessions, newest first.
func (r *Repository) Sessions() []models.WorkoutSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.WorkoutSession, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Workouts returns the legacy workout records, kept readable for history.
func (r *Repository) Workouts() []models.Workout {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Workout, len(r.workouts))
	copy(out, r.workouts)
	return out
}

// ActiveSession returns the session with no end time, if any.
func (r *Repository) ActiveSession() (*models.WorkoutSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].IsActive() {
			s := r.sessions[i]
			return &s, true
		}
	}
	return nil, false
}

// GetSession returns a copy of the session with the given id.
func (r *Repository) GetSession(id string) (*models.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, _, err := r.findLocked(id)
	if err != nil {
		return nil, err
	}
	out := *s
	return &out, nil
}

func (r *Repository) findLocked(id string) (*models.WorkoutSession, int, error) {
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			return &r.sessions[i], i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// StartSession creates and persists a new active session. It fails with
// ErrActiveSessionExists while another session is still open.
func (r *Repository) StartSession(ctx context.Context) (*models.WorkoutSession, error) {
	return r.startSession(ctx, nil)
}

// RepeatSession starts a new session pre-seeded with the distinct
// exercise ids of a past session, so the user can walk through the same
// workout again.
func (r *Repository) RepeatSession(ctx context.Context, fromID string) (*models.WorkoutSession, error) {
	r.mu.Lock()
	src, _, err := r.findLocked(fromID)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	pending := src.ExerciseIDs()
	r.mu.Unlock()
	return r.startSession(ctx, pending)
}

func (r *Repository) startSession(ctx context.Context, pending []string) (*models.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].IsActive() {
			return nil, ErrActiveSessionExists
		}
	}

	session := models.NewWorkoutSession(r.clock.Now().Unix())
	session.PendingExerciseIDs = pending
	if err := r.persistLocked(ctx, session); err != nil {
		return nil, err
	}
	r.sessions = append([]models.WorkoutSession{*session}, r.sessions...)
	r.logger.Info("session started", slog.String("id", session.ID))
	out := *session
	return &out, nil
}

// persistLocked writes a session record. The write is detached from the
// caller's cancellation so tearing down the issuing view cannot drop an
// in-flight durable write.
func (r *Repository) persistLocked(ctx context.Context, s *models.WorkoutSession) error {
	return store.PutJSON(context.WithoutCancel(ctx), r.rs, store.StoreSessions, s.ID, s)
}

// StartExercise appends a fresh log for the exercise to the session,
// denormalizing the exercise's name, category and force so the log stays
// stable even if the catalog later changes. The id must resolve against
// the catalog or the custom-exercise store.
func (r *Repository) StartExercise(ctx context.Context, sessionID, exerciseID string) (*models.ExerciseLog, error) {
	name, category, force, ok := r.resolveExercise(exerciseID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}
	log := models.ExerciseLog{
		ExerciseID:   exerciseID,
		ExerciseName: name,
		Category:     category,
		Force:        force,
		StartTime:    r.clock.Now().Unix(),
	}
	if err := r.AppendExerciseLog(ctx, sessionID, log); err != nil {
		return nil, err
	}
	return &log, nil
}

// AppendExerciseLog appends the log to the session and persists the whole
// record. The log's exercise id must resolve at call time; on failure no
// write happens. A pending id matching the log is consumed.
func (r *Repository) AppendExerciseLog(ctx context.Context, sessionID string, log models.ExerciseLog) error {
	if _, _, _, ok := r.resolveExercise(log.ExerciseID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExercise, log.ExerciseID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		return err
	}

	updated := *session
	updated.ExerciseLogs = append(append([]models.ExerciseLog{}, session.ExerciseLogs...), log)
	updated.PendingExerciseIDs = removeID(session.PendingExerciseIDs, log.ExerciseID)
	// The rest is over once the next set starts.
	updated.RestStartTime = nil
	if err := r.persistLocked(ctx, &updated); err != nil {
		return err
	}
	*session = updated
	return nil
}

func removeID(ids []string, id string) []string {
	var out []string
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// UpdateLog applies mutate to the log at index and persists the session.
func (r *Repository) UpdateLog(ctx context.Context, sessionID string, index int, mutate func(*models.ExerciseLog)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(session.ExerciseLogs) {
		return fmt.Errorf("%w: %d (session has %d logs)", ErrIndexOutOfRange, index, len(session.ExerciseLogs))
	}

	updated := *session
	updated.ExerciseLogs = append([]models.ExerciseLog{}, session.ExerciseLogs...)
	mutate(&updated.ExerciseLogs[index])
	if err := r.persistLocked(ctx, &updated); err != nil {
		return err
	}
	*session = updated
	return nil
}

// CompleteLog marks the log at index as done: sets its end time to now and
// records the confirmed values. Nil values stay unrecorded. Finishing a
// set also anchors the rest timer on the session, so a rest started now
// survives a process restart.
func (r *Repository) CompleteLog(ctx context.Context, sessionID string, index int, weight *models.Weight, reps *uint32, distance *models.Distance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(session.ExerciseLogs) {
		return fmt.Errorf("%w: %d (session has %d logs)", ErrIndexOutOfRange, index, len(session.ExerciseLogs))
	}

	end := r.clock.Now().Unix()
	updated := *session
	updated.ExerciseLogs = append([]models.ExerciseLog{}, session.ExerciseLogs...)
	l := &updated.ExerciseLogs[index]
	l.EndTime = &end
	l.Weight = weight
	l.Reps = reps
	l.Distance = distance
	updated.RestStartTime = &end
	if err := r.persistLocked(ctx, &updated); err != nil {
		return err
	}
	*session = updated
	return nil
}

// DeleteLog removes the log at index and persists the session.
func (r *Repository) DeleteLog(ctx context.Context, sessionID string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(session.ExerciseLogs) {
		return fmt.Errorf("%w: %d (session has %d logs)", ErrIndexOutOfRange, index, len(session.ExerciseLogs))
	}

	updated := *session
	updated.ExerciseLogs = append([]models.ExerciseLog{}, session.ExerciseLogs[:index]...)
	updated.ExerciseLogs = append(updated.ExerciseLogs, session.ExerciseLogs[index+1:]...)
	if err := r.persistLocked(ctx, &updated); err != nil {
		return err
	}
	*session = updated
	return nil
}

// FinishSession closes the session by setting its end time. Finishing an
// already closed session is a no-op, so retried finish actions are safe.
func (r *Repository) FinishSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		return err
	}
	if !session.IsActive() {
		return nil
	}

	updated := *session
	end := r.clock.Now().Unix()
	updated.EndTime = &end
	updated.RestStartTime = nil
	updated.PendingExerciseIDs = nil
	if err := r.persistLocked(ctx, &updated); err != nil {
		return err
	}
	*session = updated
	r.logger.Info("session finished", slog.String("id", session.ID))
	return nil
}

// CancelSession discards an active session that logged nothing. A session
// with logs is finished normally instead, so no recorded work is lost.
func (r *Repository) CancelSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	cancelled := session.IsCancelled()
	r.mu.Unlock()

	if cancelled {
		return r.DeleteSession(ctx, sessionID)
	}
	return r.FinishSession(ctx, sessionID)
}

// DeleteSession removes the session from store and projection. Deleting a
// session that does not exist is not an error.
func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.rs.Delete(context.WithoutCancel(ctx), store.StoreSessions, sessionID); err != nil {
		return err
	}
	for i := range r.sessions {
		if r.sessions[i].ID == sessionID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	return nil
}

// SetRestAnchor records when the current rest period started, so a rest
// timer can survive a process restart.
func (r *Repository) SetRestAnchor(ctx context.Context, sessionID string, at int64) error {
	return r.mutateSession(ctx, sessionID, func(s *models.WorkoutSession) {
		s.RestStartTime = &at
	})
}

// ClearRestAnchor forgets the rest period start.
func (r *Repository) ClearRestAnchor(ctx context.Context, sessionID string) error {
	return r.mutateSession(ctx, sessionID, func(s *models.WorkoutSession) {
		s.RestStartTime = nil
	})
}

func (r *Repository) mutateSession(ctx context.Context, sessionID string, mutate func(*models.WorkoutSession)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, _, err := r.findLocked(sessionID)
	if err != nil {
		return err
	}
	updated := *session
	mutate(&updated)
	if err := r.persistLocked(ctx, &updated); err != nil {
		return err
	}
	*session = updated
	return nil
}

// LastLogForExercise scans sessions newest first, logs newest first, and
// returns the most recent completed log for the exercise. Used to prefill
// a new entry with the values from last time.
func (r *Repository) LastLogForExercise(exerciseID string) (*models.ExerciseLog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		logs := r.sessions[i].ExerciseLogs
		for j := len(logs) - 1; j >= 0; j-- {
			if logs[j].ExerciseID == exerciseID && logs[j].IsCompleted() {
				out := logs[j]
				return &out, true
			}
		}
	}
	return nil, false
}

// resolveExercise looks up the id in the catalog first, then the custom
// exercise store, returning the denormalized snapshot fields.
func (r *Repository) resolveExercise(id string) (name string, category models.Category, force *models.Force, ok bool) {
	r.mu.Lock()
	for i := range r.custom {
		if r.custom[i].ID == id {
			name, category, force := r.custom[i].Name, r.custom[i].Category, r.custom[i].Force
			r.mu.Unlock()
			return name, category, force, true
		}
	}
	r.mu.Unlock()
	if ex, found := r.catalog.Get(id); found {
		return ex.Name, ex.Category, ex.Force, true
	}
	return "", "", nil, false
}
