// ABOUTME: CLI commands for reading and changing preferences.
// ABOUTME: Covers location, units, coordinates, and notification settings.
package main

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/sunshine/internal/prefs"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"p"},
	Short:   "Show or change preferences",
	Long: `Show or change sunshine preferences.

COMMANDS:

  show                       Print every preference
  set-location <location>    Location used by 'sunshine sync' (e.g. "94043,USA")
  set-units <units>          metric or imperial (also c/f)
  set-coords <lat> <lon>     Store coordinates for the location
  reset-coords               Forget stored coordinates
  notifications <on|off>     Enable or disable forecast notifications
  map                        Print a geo: URI for the preferred location

EXAMPLES:

  sunshine prefs set-location "London,UK"
  sunshine prefs set-units f
  sunshine prefs set-coords 51.5074 -0.1278`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPrefs()
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPrefs()
	},
}

var prefsSetLocationCmd = &cobra.Command{
	Use:   "set-location <location>",
	Short: "Set the preferred location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := prefStore.SetPreferredLocation(args[0]); err != nil {
			return fmt.Errorf("failed to set location: %w", err)
		}
		color.Green("✓ Location set to %s", args[0])
		return nil
	},
}

var prefsSetUnitsCmd = &cobra.Command{
	Use:       "set-units <metric|imperial>",
	Short:     "Set temperature units",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(prefs.UnitsMetric), string(prefs.UnitsImperial)},
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := prefs.ParseUnits(args[0])
		if err != nil {
			return err
		}
		if err := prefStore.SetUnits(u); err != nil {
			return fmt.Errorf("failed to set units: %w", err)
		}
		color.Green("✓ Units set to %s", u)
		return nil
	},
}

var prefsSetCoordsCmd = &cobra.Command{
	Use:   "set-coords <lat> <lon>",
	Short: "Store coordinates for the location",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := parseCoordinate(args[0], 90)
		if err != nil {
			return fmt.Errorf("invalid latitude: %w", err)
		}
		lon, err := parseCoordinate(args[1], 180)
		if err != nil {
			return fmt.Errorf("invalid longitude: %w", err)
		}
		if err := prefStore.SetLocationDetails(lat, lon); err != nil {
			return fmt.Errorf("failed to set coordinates: %w", err)
		}
		color.Green("✓ Coordinates set to %.4f, %.4f", lat, lon)
		return nil
	},
}

var prefsResetCoordsCmd = &cobra.Command{
	Use:   "reset-coords",
	Short: "Forget stored coordinates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := prefStore.ResetLocationCoordinates(); err != nil {
			return fmt.Errorf("failed to reset coordinates: %w", err)
		}
		color.Yellow("✗ Coordinates cleared")
		return nil
	},
}

var prefsNotificationsCmd = &cobra.Command{
	Use:       "notifications <on|off>",
	Short:     "Enable or disable notifications",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[0] {
		case "on", "true", "yes":
			enabled = true
		case "off", "false", "no":
			enabled = false
		default:
			return fmt.Errorf("unknown value: %s (use on or off)", args[0])
		}
		if err := prefStore.SetNotificationsEnabled(enabled); err != nil {
			return fmt.Errorf("failed to set notifications: %w", err)
		}
		color.Green("✓ Notifications %s", onOff(enabled))
		return nil
	},
}

var prefsMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print a geo: URI for the preferred location",
	Long: `Print a geo: URI for the preferred location, suitable for a map app.

Uses the stored coordinates when set, otherwise a query for the location name.

  xdg-open "$(sunshine prefs map)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uri, err := geoURI(prefStore)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	},
}

// geoURI builds an RFC 5870 geo URI from the saved coordinates or location.
func geoURI(store prefs.Store) (string, error) {
	hasCoords, err := store.IsLocationLatLonAvailable()
	if err != nil {
		return "", err
	}
	if !hasCoords {
		location, err := store.PreferredLocation()
		if err != nil {
			return "", err
		}
		return "geo:0,0?q=" + url.QueryEscape(location), nil
	}

	lat, lon, err := store.LocationCoordinates()
	if err != nil {
		return "", err
	}
	return "geo:" + strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64), nil
}

func parseCoordinate(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("%s out of range ±%.0f", s, limit)
	}
	return v, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printPrefs() error {
	location, err := prefStore.PreferredLocation()
	if err != nil {
		return err
	}
	metric, err := prefStore.IsMetric()
	if err != nil {
		return err
	}
	hasCoords, err := prefStore.IsLocationLatLonAvailable()
	if err != nil {
		return err
	}
	notify, err := prefStore.AreNotificationsEnabled()
	if err != nil {
		return err
	}
	last, err := prefStore.LastNotificationTime()
	if err != nil {
		return err
	}

	units := prefs.UnitsImperial
	if metric {
		units = prefs.UnitsMetric
	}

	faint := color.New(color.Faint)
	fmt.Printf("%s %s\n", padRight("location", 14), location)
	fmt.Printf("%s %s\n", padRight("units", 14), units)
	if hasCoords {
		lat, lon, err := prefStore.LocationCoordinates()
		if err != nil {
			return err
		}
		fmt.Printf("%s %.4f, %.4f\n", padRight("coordinates", 14), lat, lon)
	} else {
		fmt.Printf("%s %s\n", padRight("coordinates", 14), faint.Sprint("(not set)"))
	}
	fmt.Printf("%s %s\n", padRight("notifications", 14), onOff(notify))
	if last > 0 {
		fmt.Printf("%s %s\n", padRight("last notified", 14),
			time.UnixMilli(last).Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("%s %s\n", padRight("last notified", 14), faint.Sprint("(never)"))
	}
	fmt.Printf("%s %s\n", padRight("backend", 14), faint.Sprint(cfg.GetPrefsBackend()))
	return nil
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetLocationCmd)
	prefsCmd.AddCommand(prefsSetUnitsCmd)
	prefsCmd.AddCommand(prefsSetCoordsCmd)
	prefsCmd.AddCommand(prefsResetCoordsCmd)
	prefsCmd.AddCommand(prefsNotificationsCmd)
	prefsCmd.AddCommand(prefsMapCmd)
	rootCmd.AddCommand(prefsCmd)
}
