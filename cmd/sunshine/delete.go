// ABOUTME: CLI command for deleting cached forecast days.
// ABOUTME: Deletes days before a date, or the whole cache with --all.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"github.com/spf13/cobra"
)

var (
	deleteBefore string
	deleteAll    bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"del", "rm"},
	Short:   "Delete cached forecast days",
	Long: `Delete cached forecast days.

Use --before to drop days strictly before a date, or --all to empty the
cache. One of the two is required.

EXAMPLES:

  sunshine delete --before today        # Drop stale days
  sunshine delete --before 2024-06-01
  sunshine rm --all                     # Empty the cache

CAUTION:

  This permanently deletes cached days. Run 'sunshine sync' to refill.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			selection string
			selArgs   []any
		)

		switch {
		case deleteBefore != "" && deleteAll:
			return fmt.Errorf("use either --before or --all, not both")
		case deleteBefore != "":
			date, err := models.ParseDate(deleteBefore, time.Now())
			if err != nil {
				return err
			}
			selection = contract.ColumnDate + " < ?"
			selArgs = []any{date}
		case deleteAll:
		default:
			return fmt.Errorf("specify --before DATE or --all")
		}

		n, err := provider.Delete(cmd.Context(), contract.AllWeather(), selection, selArgs)
		if err != nil {
			return fmt.Errorf("failed to delete forecast: %w", err)
		}

		color.Yellow("✗ Deleted %d day(s)", n)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteBefore, "before", "", "delete days strictly before this date")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every cached day")
	rootCmd.AddCommand(deleteCmd)
}
