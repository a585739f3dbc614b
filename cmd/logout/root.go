// ABOUTME: Root Cobra command for logout CLI.
// ABOUTME: Opens storage, runs migration and loads projections before any command.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/catalog"
	"github.com/gfauredev/logout/internal/config"
	"github.com/gfauredev/logout/internal/migrate"
	"github.com/gfauredev/logout/internal/repository"
	"github.com/gfauredev/logout/internal/store"
)

var (
	cfg     *config.Config
	rs      store.RecordStore
	cache   *catalog.Cache
	repo    *repository.Repository
	logger  *slog.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "logout",
	Short: "Local-first workout tracker",
	Long: `Logout is a local-first workout tracker.

Your training data lives on your machine, in a local database you own.
The exercise catalog is cached locally and refreshed in the background;
nothing here ever blocks on the network.

QUICK START:

  $ logout session start                # Start a workout
  $ logout log pushups                  # Start an exercise set (searches the catalog)
  $ logout log done --weight 20 --reps 12
  $ logout rest                         # Run the rest timer between sets
  $ logout session finish               # Wrap up

BROWSING:

  $ logout exercise search "bench"      # Search the exercise catalog
  $ logout exercise show Barbell_Squat  # Full instructions for one exercise
  $ logout session list                 # Your workout history
  $ logout session show <id>            # One session in detail

CUSTOM EXERCISES:

  $ logout exercise custom add "Weighted Carry" --category strongman
  $ logout exercise custom list

DATA STORAGE:

  Records are stored under ~/.local/share/logout (SQLite by default,
  Badger with "backend": "badger" in ~/.config/logout/config.json).
  Legacy single-blob exports are migrated automatically on startup.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		rs, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		ctx := cmd.Context()

		// Legacy flat blobs must be fanned out before anything reads.
		dataDir := cfg.GetDataDir()
		runner := migrate.NewRunner(migrate.NewFileLegacyStore(dataDir), rs, logger)
		if _, err := runner.Run(ctx); err != nil {
			return fmt.Errorf("legacy migration failed: %w", err)
		}

		stamp := catalog.NewFetchStamp(dataDir)
		fetcher := catalog.NewHTTPFetcher(cfg.GetCatalogBaseURL())
		cache = catalog.New(rs, fetcher, stamp, logger,
			catalog.WithRefreshInterval(cfg.GetRefreshInterval()))
		if err := cache.Load(ctx); err != nil {
			// An empty catalog degrades browsing but must not kill the CLI.
			logger.Warn("exercise catalog unavailable", slog.String("error", err.Error()))
		}

		repo = repository.New(rs, cache, logger)
		return repo.Load(ctx)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rs != nil {
			return rs.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
