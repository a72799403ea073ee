// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/sunshine/internal/mcp"
	"github.com/harperreed/sunshine/internal/weatherutil"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and refresh your forecast cache
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "sunshine": {
        "command": "sunshine",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  list_forecast     Forecast rows from today onwards
  get_weather       Full forecast for one day
  sync_forecast     Refresh the cache for the preferred location
  delete_weather    Delete days before a date, or all of them

AVAILABLE RESOURCES:

  content://com.example.android.sunshine/weather          Every cached day
  content://com.example.android.sunshine/weather/{date}   One day (UTC-midnight millis)

  Both resources support subscriptions. Subscribers are notified whenever
  a sync or delete changes the days they cover.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(provider, prefStore, mcp.Options{
			UseTodayLayout: cfg.TodayLayout(),
			Language:       weatherutil.ParseLanguage(cfg.GetLanguage()),
			SyncDays:       cfg.GetSyncDays(),
			Logger:         logger,
		})
		if err != nil {
			return err
		}
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
