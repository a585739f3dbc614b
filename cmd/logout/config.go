// ABOUTME: CLI command showing the effective configuration.
// ABOUTME: Prints resolved paths, backend and policy values.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration.

Settings come from ~/.config/logout/config.json; anything unset falls
back to a default. Editable keys:

  backend                  "sqlite" (default) or "badger"
  data_dir                 where records live (default ~/.local/share/logout)
  catalog_base_url         exercise database origin
  refresh_interval_hours   catalog staleness policy (default 24)
  rest_duration_seconds    rest timer threshold (default 30)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		fmt.Printf("Config file: %s\n", faint.Sprint(config.GetConfigPath()))
		fmt.Printf("Backend:     %s\n", cfg.GetBackend())
		fmt.Printf("Data dir:    %s\n", cfg.GetDataDir())
		fmt.Printf("Catalog:     %s\n", cfg.GetCatalogBaseURL())
		fmt.Printf("Refresh:     every %s\n", cfg.GetRefreshInterval())
		fmt.Printf("Rest:        %s\n", cfg.GetRestDuration())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
