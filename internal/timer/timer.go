// ABOUTME: Rest and duration timers driven by one-second tick loops.
// ABOUTME: Each loop stops immediately when its owning context is cancelled.
package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// tickInterval is the fixed period of every timer loop.
const tickInterval = time.Second

// DefaultRestThreshold is the rest duration used when the user has not
// configured one.
const DefaultRestThreshold = 30 * time.Second

// RestTimer alerts once per completed multiple of the rest threshold.
// Tracking the last fired multiple (not a boolean) means intervals crossed
// while the process was suspended still produce their alerts on the next
// tick instead of being silently swallowed.
type RestTimer struct {
	threshold time.Duration
	anchor    time.Time
	clock     clockwork.Clock
	notifier  Notifier
	logger    *slog.Logger

	lastMultiple int64
}

// NewRestTimer creates a rest timer anchored at the given start time.
func NewRestTimer(threshold time.Duration, anchor time.Time, notifier Notifier, clock clockwork.Clock, logger *slog.Logger) *RestTimer {
	return &RestTimer{
		threshold: threshold,
		anchor:    anchor,
		clock:     clock,
		notifier:  notifier,
		logger:    logger,
	}
}

// Run ticks every second until ctx is cancelled. A cancelled timer never
// fires another notification.
func (t *RestTimer) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			t.tick(now)
		}
	}
}

// Elapsed returns the time since the rest anchor.
func (t *RestTimer) Elapsed() time.Duration {
	return t.clock.Now().Sub(t.anchor)
}

func (t *RestTimer) tick(now time.Time) {
	if t.threshold <= 0 {
		return
	}
	multiple := int64(now.Sub(t.anchor) / t.threshold)
	for m := t.lastMultiple + 1; m <= multiple; m++ {
		if err := t.notifier.Notify(Notification{
			Title:  "Rest over",
			Body:   "Time to start your next set!",
			Tag:    "logout-rest",
			Urgent: true,
		}); err != nil {
			t.logger.Warn("rest notification failed", slog.String("error", err.Error()))
		}
	}
	if multiple > t.lastMultiple {
		t.lastMultiple = multiple
	}
}

// DurationTimer alerts exactly once when the elapsed time first reaches
// the target, typically the duration recorded for the same exercise last
// time. The fired flag keeps suspend/resume cycles from re-firing it.
type DurationTimer struct {
	target   time.Duration
	anchor   time.Time
	clock    clockwork.Clock
	notifier Notifier
	logger   *slog.Logger

	fired bool
}

// NewDurationTimer creates a duration timer anchored at the given start time.
func NewDurationTimer(target time.Duration, anchor time.Time, notifier Notifier, clock clockwork.Clock, logger *slog.Logger) *DurationTimer {
	return &DurationTimer{
		target:   target,
		anchor:   anchor,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
	}
}

// Run ticks every second until ctx is cancelled.
func (t *DurationTimer) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			t.tick(now)
		}
	}
}

// Elapsed returns the time since the exercise started.
func (t *DurationTimer) Elapsed() time.Duration {
	return t.clock.Now().Sub(t.anchor)
}

func (t *DurationTimer) tick(now time.Time) {
	if t.fired || t.target <= 0 {
		return
	}
	if now.Sub(t.anchor) < t.target {
		return
	}
	t.fired = true
	if err := t.notifier.Notify(Notification{
		Title:  "Duration reached",
		Body:   "Target exercise duration reached!",
		Tag:    "logout-duration",
		Urgent: false,
	}); err != nil {
		t.logger.Warn("duration notification failed", slog.String("error", err.Error()))
	}
}
