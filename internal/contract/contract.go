// ABOUTME: Resource addressing and column names for the weather store.
// ABOUTME: Resources are a closed variant parsed from content URIs.
package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/sunshine/internal/models"
)

const (
	Scheme      = "content"
	Authority   = "com.example.android.sunshine"
	PathWeather = "weather"

	// TableWeather is the single table backing every weather resource.
	TableWeather = "weather"
)

// Column names accepted in projections, selections and sort orders.
const (
	ColumnDate        = "date"
	ColumnConditionID = "conditionId"
	ColumnMaxTemp     = "maxTemp"
	ColumnMinTemp     = "minTemp"
	ColumnHumidity    = "humidity"
	ColumnPressure    = "pressure"
	ColumnWindSpeed   = "windSpeed"
	ColumnDegrees     = "degrees"
)

// AllColumns lists every weather column in storage order.
var AllColumns = []string{
	ColumnDate,
	ColumnConditionID,
	ColumnMaxTemp,
	ColumnMinTemp,
	ColumnHumidity,
	ColumnPressure,
	ColumnWindSpeed,
	ColumnDegrees,
}

// IsValidColumn checks if name is a known weather column.
func IsValidColumn(name string) bool {
	for _, c := range AllColumns {
		if c == name {
			return true
		}
	}
	return false
}

// Kind identifies which shape a Resource addresses.
type Kind int

const (
	KindNoMatch Kind = iota
	KindAllWeather
	KindWeatherByDate
)

func (k Kind) String() string {
	switch k {
	case KindAllWeather:
		return "all_weather"
	case KindWeatherByDate:
		return "weather_by_date"
	default:
		return "no_match"
	}
}

// Resource is a parsed weather resource. The zero value is NoMatch.
type Resource struct {
	kind Kind
	date int64
}

// AllWeather addresses every stored row.
func AllWeather() Resource {
	return Resource{kind: KindAllWeather}
}

// WeatherByDate addresses the row for one normalized date.
func WeatherByDate(date int64) Resource {
	return Resource{kind: KindWeatherByDate, date: date}
}

// WeatherForDay is WeatherByDate for the day containing t.
func WeatherForDay(t time.Time) Resource {
	return WeatherByDate(models.NormalizeDate(t))
}

// NoMatch is the sentinel for identifiers that address nothing.
func NoMatch() Resource {
	return Resource{}
}

// Kind returns the resource shape.
func (r Resource) Kind() Kind {
	return r.kind
}

// Date returns the date of a WeatherByDate resource.
func (r Resource) Date() (int64, bool) {
	if r.kind != KindWeatherByDate {
		return 0, false
	}
	return r.date, true
}

// IsMatch is false only for the NoMatch sentinel.
func (r Resource) IsMatch() bool {
	return r.kind != KindNoMatch
}

// String renders the content URI for the resource.
func (r Resource) String() string {
	base := Scheme + "://" + Authority + "/" + PathWeather
	switch r.kind {
	case KindAllWeather:
		return base
	case KindWeatherByDate:
		return base + "/" + strconv.FormatInt(r.date, 10)
	default:
		return ""
	}
}

// Parse maps a content URI onto a Resource. Unknown shapes yield NoMatch.
func Parse(uri string) Resource {
	prefix := Scheme + "://" + Authority + "/"
	if !strings.HasPrefix(uri, prefix) {
		return NoMatch()
	}

	path := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), "/")
	segments := strings.Split(path, "/")
	if segments[0] != PathWeather {
		return NoMatch()
	}

	switch len(segments) {
	case 1:
		return AllWeather()
	case 2:
		date, ok := parseNumber(segments[1])
		if !ok {
			return NoMatch()
		}
		return WeatherByDate(date)
	default:
		return NoMatch()
	}
}

// parseNumber accepts decimal digits with an optional leading minus.
func parseNumber(s string) (int64, bool) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Covers reports whether a change to changed should reach an observer of r.
// Changes propagate to both ancestors and descendants.
func (r Resource) Covers(changed Resource) bool {
	if !r.IsMatch() || !changed.IsMatch() {
		return false
	}
	if r.kind == KindAllWeather || changed.kind == KindAllWeather {
		return true
	}
	return r.date == changed.date
}

// SelectTodayOnwards returns a selection for rows dated today or later.
func SelectTodayOnwards(now time.Time) (string, []any) {
	return fmt.Sprintf("%s >= ?", ColumnDate), []any{models.NormalizeDate(now)}
}
