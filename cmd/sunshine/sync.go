// ABOUTME: CLI command for refreshing the forecast cache.
// ABOUTME: Fetches days for the preferred location and replaces cached rows.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	forecastsync "github.com/harperreed/sunshine/internal/sync"
	"github.com/spf13/cobra"
)

var (
	syncDays int
	syncSeed uint64
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Refresh the forecast cache",
	Long: `Refresh the forecast cache for your preferred location.

Existing cached days are deleted and replaced with freshly fetched ones in a
single batch. If the fetch fails, the cache is left untouched.

Forecasts currently come from a built-in generator that produces plausible
weather. Use --seed for a repeatable forecast.

EXAMPLES:

  sunshine sync                 # Fetch sync_days days (default 14)
  sunshine sync --days 7        # Fetch one week
  sunshine sync --seed 42       # Repeatable forecast`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := syncSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		syncer := forecastsync.NewSyncer(provider, prefStore, forecastsync.NewFakeSource(seed), logger)
		syncer.Days = cfg.GetSyncDays()
		if syncDays > 0 {
			syncer.Days = syncDays
		}

		res, err := syncer.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		color.Green("✓ Synced %d day(s) for %s", res.Inserted, res.Location)
		faint := color.New(color.Faint)
		fmt.Printf("  %s fetched %d, replaced %d\n",
			faint.Sprint(res.BatchID.String()[:8]), res.Fetched, res.Deleted)

		return nil
	},
}

func init() {
	syncCmd.Flags().IntVarP(&syncDays, "days", "d", 0, "number of days to fetch (default: sync_days from config)")
	syncCmd.Flags().Uint64Var(&syncSeed, "seed", 0, "seed for a repeatable forecast")
	rootCmd.AddCommand(syncCmd)
}
