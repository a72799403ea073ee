// ABOUTME: CLI command for listing cached forecast days.
// ABOUTME: Renders the list adapter's slots with the today row highlighted.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/sunshine/internal/adapter"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	listAll   bool
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List cached forecast days",
	Long: `List cached forecast days from today onwards, one row per day.

OUTPUT FORMAT:

  Each line shows: DATE  DAY  ICON  DESCRIPTION  HIGH  LOW

  The first row uses the large "today" layout unless use_today_layout is
  false in the config. Temperatures follow 'sunshine prefs set-units'.

EXAMPLES:

  sunshine list                 # Today onwards
  sunshine list --all           # Include days before today
  sunshine list -n 3            # Only the next three days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFormatter()
		if err != nil {
			return err
		}

		a := adapter.New(f, nil, adapter.Options{UseTodayLayout: cfg.TodayLayout()})
		loader := adapter.NewLoader(provider, a, logger)
		loader.All = listAll
		if err := loader.Reload(cmd.Context()); err != nil {
			return fmt.Errorf("failed to list forecast: %w", err)
		}

		slots, err := a.Render()
		if err != nil {
			return fmt.Errorf("failed to render forecast: %w", err)
		}

		if len(slots) == 0 {
			fmt.Println("No forecast cached. Run 'sunshine sync' first.")
			return nil
		}
		if listLimit > 0 && len(slots) > listLimit {
			slots = slots[:listLimit]
		}

		faint := color.New(color.Faint)
		today := color.New(color.Bold)
		for _, slot := range slots {
			rec, err := slot.Record()
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s %s %s %s %s",
				padRight(slot.Date.Text, 16),
				padRight(string(slot.Icon), 14),
				padRight(truncate(slot.Description.Text, 28), 28),
				padRight(slot.High.Text, 6),
				faint.Sprint(slot.Low.Text))
			if slot.ViewType == adapter.ViewTypeToday {
				fmt.Printf("%s %s\n", faint.Sprint(rec.Time().Format("2006-01-02")), today.Sprint(line))
				continue
			}
			fmt.Printf("%s %s\n", faint.Sprint(rec.Time().Format("2006-01-02")), line)
		}

		return nil
	},
}

// truncate and padRight measure terminal cells, so "°" and accented names keep columns aligned.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include days before today")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max number of days (0 = all)")
	rootCmd.AddCommand(listCmd)
}
