// ABOUTME: Root Cobra command for sunshine CLI.
// ABOUTME: Loads config and opens the weather store and preferences via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/config"
	"github.com/harperreed/sunshine/internal/prefs"
	"github.com/harperreed/sunshine/internal/storage"
	"github.com/harperreed/sunshine/internal/weatherutil"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logger    *log.Logger
	provider  *storage.Provider
	prefStore prefs.Store

	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "sunshine",
	Short: "Local weather forecast cache",
	Long: `Sunshine keeps a local cache of daily weather forecasts and renders them
as a forecast list: a large "today" row followed by one row per future day.

QUICK START:

  $ sunshine sync                       # Fill the cache with 14 days
  $ sunshine list                       # Today onwards
  $ sunshine show tomorrow              # Full details for one day
  $ sunshine prefs set-units imperial   # Show temperatures in °F

PREFERENCES:

  Location, units, coordinates, and notification state live in a small
  key-value store. The default backend is a local Badger database; set
  prefs_backend to "charm" to sync preferences through Charm Cloud.

  $ sunshine prefs show
  $ sunshine cloud link                 # Link this device (charm backend)

MCP INTEGRATION:

  Run 'sunshine mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "sunshine": { "command": "sunshine", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Forecasts are stored in SQLite at ~/.local/share/sunshine/weather.db.
  Override with --data-dir, SUNSHINE_DATA_DIR, or data_dir in
  ~/.config/sunshine/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if !needsStores(cmd) {
			return nil
		}

		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logger = cfg.NewLogger(os.Stderr)

		provider, err = cfg.OpenProvider(logger)
		if err != nil {
			return fmt.Errorf("failed to open weather database: %w", err)
		}

		prefStore, err = cfg.OpenPrefs()
		if err != nil {
			closeStores()
			return fmt.Errorf("failed to open preferences: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStores()
	},
}

// needsStores reports whether cmd reads the weather cache or preferences.
func needsStores(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "install-skill", "completion":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "cloud" {
			return false
		}
	}
	return true
}

// closeStores closes whatever PersistentPreRunE opened.
func closeStores() error {
	var firstErr error
	if prefStore != nil {
		if err := prefStore.Close(); err != nil {
			firstErr = err
		}
		prefStore = nil
	}
	if provider != nil {
		if err := provider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		provider = nil
	}
	return firstErr
}

// newFormatter builds a formatter for the stored units and configured language.
func newFormatter() (*weatherutil.Formatter, error) {
	metric, err := prefStore.IsMetric()
	if err != nil {
		return nil, fmt.Errorf("failed to read units: %w", err)
	}
	return weatherutil.NewFormatter(metric, weatherutil.ParseLanguage(cfg.GetLanguage())), nil
}

// Execute runs the root command and releases stores even when a command fails.
func Execute() error {
	defer closeStores()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ~/.local/share/sunshine)")
}
