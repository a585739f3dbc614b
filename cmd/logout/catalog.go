// ABOUTME: CLI commands for the exercise catalog cache.
// ABOUTME: Force a refresh or inspect cache freshness.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the exercise catalog cache",
	Long: `Manage the exercise catalog cache.

The catalog is downloaded from the remote exercise database, cached in
your local store, and refreshed in the background when older than the
configured interval (24h by default). Commands always serve the cached
catalog; this command group is for forcing or inspecting the refresh.`,
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download the catalog now",
	RunE: func(cmd *cobra.Command, args []string) error {
		before := len(cache.Exercises())
		if err := cache.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("catalog refresh failed: %w", err)
		}
		after := len(cache.Exercises())
		color.Green("✓ Catalog refreshed")
		fmt.Printf("  %d exercises (was %d)\n", after, before)
		return nil
	},
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache state and freshness",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("State:     %s\n", cache.State())
		fmt.Printf("Exercises: %d (%d custom)\n",
			len(cache.Exercises()), len(repo.CustomExercises()))
		stamp := catalog.NewFetchStamp(cfg.GetDataDir())
		if last, ok := stamp.Last(); ok {
			fmt.Printf("Fetched:   %s (%s ago)\n",
				last.Format("2006-01-02 15:04"),
				time.Since(last).Round(time.Minute))
		} else {
			fmt.Println("Fetched:   never")
		}
		if cache.IsStale() {
			color.Yellow("The cache is stale and will refresh on next use.")
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogRefreshCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	rootCmd.AddCommand(catalogCmd)
}
