// ABOUTME: Periodic staleness check driving background catalog refreshes.
// ABOUTME: Wraps gocron so long-running processes keep the catalog fresh.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Refresher periodically asks the cache to refresh itself when stale.
// Intended for long-running processes; one-shot CLI invocations call
// Cache.RefreshIfStale directly instead.
type Refresher struct {
	scheduler gocron.Scheduler
	cache     *Cache
	logger    *slog.Logger
}

// NewRefresher creates a refresher checking staleness at the given
// interval. The check is cheap; the actual download only happens when
// the cache's refresh policy says so.
func NewRefresher(cache *Cache, checkInterval time.Duration, logger *slog.Logger) (*Refresher, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}

	r := &Refresher{
		scheduler: s,
		cache:     cache,
		logger:    logger,
	}

	if _, err := s.NewJob(
		gocron.DurationJob(checkInterval),
		gocron.NewTask(r.check),
		gocron.WithName("catalog-staleness-check"),
	); err != nil {
		return nil, fmt.Errorf("scheduling staleness check: %w", err)
	}

	return r, nil
}

// Start begins the periodic checks.
func (r *Refresher) Start() {
	r.logger.Info("starting catalog refresher")
	r.scheduler.Start()
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop() error {
	r.logger.Info("stopping catalog refresher")
	return r.scheduler.Shutdown()
}

func (r *Refresher) check() {
	r.cache.RefreshIfStale(context.Background())
}
