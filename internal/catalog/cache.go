// ABOUTME: Read-through exercise catalog cache with background refresh.
// ABOUTME: Serves cached data immediately; network never blocks readers.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/gfauredev/logout/internal/models"
	"github.com/gfauredev/logout/internal/store"
)

// ErrUnavailable means there is no cached catalog, the download failed,
// and no bundled snapshot could be loaded. The catalog stays empty; this
// is never fatal to the process.
var ErrUnavailable = errors.New("exercise catalog unavailable")

// State of the catalog cache.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StatePopulated
	StateRefreshInProgress
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateRefreshInProgress:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Cache is the exercise catalog projection backed by the record store.
// Reads always serve the in-memory slice; a refresh replaces it wholesale
// only after the download fully validates.
type Cache struct {
	rs       store.RecordStore
	fetcher  Fetcher
	stamp    *FetchStamp
	clock    clockwork.Clock
	logger   *slog.Logger
	interval time.Duration

	mu        sync.RWMutex
	state     State
	exercises []models.Exercise
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects the clock used for staleness decisions.
func WithClock(c clockwork.Clock) Option {
	return func(cache *Cache) { cache.clock = c }
}

// WithRefreshInterval overrides the staleness interval.
func WithRefreshInterval(d time.Duration) Option {
	return func(cache *Cache) { cache.interval = d }
}

// New creates a catalog cache. Call Load before serving reads.
func New(rs store.RecordStore, fetcher Fetcher, stamp *FetchStamp, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		rs:       rs,
		fetcher:  fetcher,
		stamp:    stamp,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		interval: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load populates the cache from the record store. If cached records exist
// the cache is populated immediately, independent of network status, and a
// background refresh is kicked off only when the cache is stale. On a
// first run with no cache the catalog is downloaded; if that fails the
// bundled snapshot is persisted and served instead.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	records, err := c.rs.GetAll(ctx, store.StoreExercises)
	if err != nil {
		c.logger.Warn("loading cached catalog failed", slog.String("error", err.Error()))
		records = nil
	}
	cached := store.DecodeAll[models.Exercise](c.logger, store.StoreExercises, records)

	if len(cached) > 0 {
		c.mu.Lock()
		c.exercises = cached
		c.state = StatePopulated
		c.mu.Unlock()
		c.logger.Info("catalog loaded from cache", slog.Int("exercises", len(cached)))

		if c.IsStale() {
			c.logger.Info("catalog is stale, refreshing in background")
			go c.refresh(context.WithoutCancel(ctx))
		}
		return nil
	}

	// First run: nothing cached yet, so a download cannot lose data.
	fromSnapshot := false
	exercises, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Warn("catalog download failed, trying bundled snapshot",
			slog.String("error", err.Error()))
		exercises, err = loadSnapshot()
		if err != nil {
			c.mu.Lock()
			c.state = StateEmpty
			c.mu.Unlock()
			return ErrUnavailable
		}
		fromSnapshot = true
	}

	if err := c.persist(ctx, nil, exercises); err != nil {
		c.logger.Warn("persisting catalog failed", slog.String("error", err.Error()))
	} else if !fromSnapshot {
		// The stamp marks a successful download only. Serving the bundled
		// snapshot leaves it absent, so the next staleness check retries
		// the real fetch instead of waiting out a full interval.
		if err := c.stamp.Record(c.clock.Now()); err != nil {
			c.logger.Warn("recording fetch timestamp failed", slog.String("error", err.Error()))
		}
	}

	c.mu.Lock()
	c.exercises = exercises
	c.state = StatePopulated
	c.mu.Unlock()
	c.logger.Info("catalog populated", slog.Int("exercises", len(exercises)))
	return nil
}

// IsStale reports whether the last successful fetch is older than the
// refresh interval, or has never happened.
func (c *Cache) IsStale() bool {
	last, ok := c.stamp.Last()
	if !ok {
		return true
	}
	return c.clock.Now().Sub(last) >= c.interval
}

// RefreshIfStale triggers a non-blocking background refresh when the
// cache is stale. Readers keep seeing the current catalog meanwhile.
// A refresh already in progress is never doubled up.
func (c *Cache) RefreshIfStale(ctx context.Context) {
	if !c.IsStale() {
		return
	}
	c.mu.Lock()
	if c.state == StateRefreshInProgress {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	go c.refresh(context.WithoutCancel(ctx))
}

// Refresh downloads the catalog and replaces the cache wholesale. On any
// failure the existing cache and fetch timestamp stay untouched; the next
// staleness check is the only retry trigger.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.refresh(ctx)
}

func (c *Cache) refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateRefreshInProgress {
		c.mu.Unlock()
		return nil
	}
	prev := c.state
	c.state = StateRefreshInProgress
	old := c.exercises
	c.mu.Unlock()

	restore := func() {
		c.mu.Lock()
		c.state = prev
		c.mu.Unlock()
	}

	exercises, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Warn("catalog refresh failed", slog.String("error", err.Error()))
		restore()
		return err
	}

	if err := c.persist(ctx, old, exercises); err != nil {
		c.logger.Warn("catalog refresh persist failed", slog.String("error", err.Error()))
		restore()
		return err
	}
	if err := c.stamp.Record(c.clock.Now()); err != nil {
		c.logger.Warn("recording fetch timestamp failed", slog.String("error", err.Error()))
	}

	c.mu.Lock()
	c.exercises = exercises
	c.state = StatePopulated
	c.mu.Unlock()
	c.logger.Info("catalog refreshed", slog.Int("exercises", len(exercises)))
	return nil
}

// persist replaces the record store's catalog contents wholesale: stale
// records that vanished upstream are deleted, then every new record is put.
func (c *Cache) persist(ctx context.Context, old, fresh []models.Exercise) error {
	keep := make(map[string]bool, len(fresh))
	for i := range fresh {
		keep[fresh[i].ID] = true
	}
	for i := range old {
		if !keep[old[i].ID] {
			if err := c.rs.Delete(ctx, store.StoreExercises, old[i].ID); err != nil {
				return err
			}
		}
	}
	for i := range fresh {
		if err := store.PutJSON(ctx, c.rs, store.StoreExercises, fresh[i].ID, fresh[i]); err != nil {
			return err
		}
	}
	return nil
}

// State returns the current cache state.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Exercises returns the current catalog projection. The returned slice is
// shared and must not be mutated by callers.
func (c *Cache) Exercises() []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.exercises
}

// Get returns the catalog exercise with the given id.
func (c *Cache) Get(id string) (*models.Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.exercises {
		if c.exercises[i].ID == id {
			return &c.exercises[i], true
		}
	}
	return nil, false
}
