// ABOUTME: CLI command running the rest timer between sets.
// ABOUTME: Anchors the rest on the active session so it survives restarts.
package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/catalog"
	"github.com/gfauredev/logout/internal/timer"
)

var restDuration time.Duration

var restCmd = &cobra.Command{
	Use:     "rest",
	Aliases: []string{"r"},
	Short:   "Run the rest timer",
	Long: `Run the rest timer between sets.

The timer alerts every time the rest duration elapses, so if you zone out
for two full intervals you get told twice. The rest start is persisted on
the active session; if the process restarts mid-rest, the timer resumes
from the original anchor instead of starting over.

Stop the timer with Ctrl-C.

Examples:
  logout rest                 # Use the configured rest duration
  logout rest --duration 90s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold := restDuration
		if threshold <= 0 {
			threshold = cfg.GetRestDuration()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		anchor := time.Now()
		s, active := repo.ActiveSession()
		if active {
			if s.RestStartTime != nil {
				anchor = time.Unix(*s.RestStartTime, 0)
			} else if err := repo.SetRestAnchor(ctx, s.ID, anchor.Unix()); err != nil {
				return err
			}
		}

		// The rest timer is the one long-running command, so piggyback the
		// periodic catalog staleness check on it.
		if refresher, err := catalog.NewRefresher(cache, time.Hour, logger); err != nil {
			logger.Warn("catalog refresher unavailable", slog.String("error", err.Error()))
		} else {
			refresher.Start()
			defer refresher.Stop()
		}

		fmt.Printf("Resting, alert every %s. Ctrl-C to stop.\n", threshold)
		rest := timer.NewRestTimer(threshold, anchor, timer.ConsoleNotifier{},
			clockwork.NewRealClock(), logger)
		rest.Run(ctx)

		if active {
			if err := repo.ClearRestAnchor(cmd.Context(), s.ID); err != nil {
				return err
			}
		}
		color.Green("\n✓ Rested %s", rest.Elapsed().Round(time.Second))
		return nil
	},
}

func init() {
	restCmd.Flags().DurationVarP(&restDuration, "duration", "d", 0, "rest duration before each alert")
	rootCmd.AddCommand(restCmd)
}
