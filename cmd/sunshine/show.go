// ABOUTME: CLI command for showing one cached forecast day.
// ABOUTME: Reads a single day through the by-date resource and prints every field.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"github.com/harperreed/sunshine/internal/storage"
	"github.com/harperreed/sunshine/internal/weatherutil"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <date>",
	Aliases: []string{"get"},
	Short:   "Show the forecast for one day",
	Long: `Show the full cached forecast for one day.

The date may be YYYY-MM-DD, today, tomorrow, yesterday, or a UTC-midnight
epoch millisecond value as used in resource URIs.

EXAMPLES:

  sunshine show today
  sunshine show 2024-06-25
  sunshine show 1719273600000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.ParseDate(args[0], time.Now())
		if err != nil {
			return err
		}

		rs, err := provider.Query(cmd.Context(), contract.WeatherByDate(date), storage.Query{})
		if err != nil {
			return fmt.Errorf("failed to read forecast: %w", err)
		}
		if rs.Len() == 0 {
			return fmt.Errorf("no forecast for %s", models.DateFromMillis(date).Format("2006-01-02"))
		}
		rec, err := rs.At(0)
		if err != nil {
			return err
		}

		f, err := newFormatter()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		color.New(color.Bold).Println(f.FriendlyDateString(rec.Date, true))
		fmt.Printf("  %s %s\n",
			weatherutil.DescriptionForCondition(rec.WeatherConditionID),
			faint.Sprintf("(%s)", weatherutil.IconForCondition(rec.WeatherConditionID, true)))
		fmt.Printf("  %s %s\n", padRight("High", 10), f.FormatTemperature(rec.MaxTemp))
		fmt.Printf("  %s %s\n", padRight("Low", 10), f.FormatTemperature(rec.MinTemp))
		fmt.Printf("  %s %s\n", padRight("Humidity", 10), f.FormatHumidity(rec.Humidity))
		fmt.Printf("  %s %s\n", padRight("Pressure", 10), f.FormatPressure(rec.Pressure))
		fmt.Printf("  %s %s\n", padRight("Wind", 10), f.FormatWind(rec.WindSpeed, rec.Degrees))
		fmt.Printf("  %s\n", faint.Sprint(contract.WeatherByDate(rec.Date).String()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
