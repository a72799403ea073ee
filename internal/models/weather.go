// ABOUTME: WeatherRecord model and date normalization helpers.
// ABOUTME: One record per calendar day, keyed by its UTC-midnight timestamp in millis.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayInMillis is the length of one day in epoch milliseconds.
const DayInMillis int64 = 24 * 60 * 60 * 1000

// WeatherRecord is the forecast for a single day.
// Temperatures are stored in degrees Celsius.
type WeatherRecord struct {
	Date               int64   `json:"date" yaml:"date"`
	WeatherConditionID int     `json:"condition_id" yaml:"condition_id"`
	MaxTemp            float64 `json:"max_temp" yaml:"max_temp"`
	MinTemp            float64 `json:"min_temp" yaml:"min_temp"`
	Humidity           float64 `json:"humidity" yaml:"humidity"`
	Pressure           float64 `json:"pressure" yaml:"pressure"`
	WindSpeed          float64 `json:"wind_speed" yaml:"wind_speed"`
	Degrees            float64 `json:"degrees" yaml:"degrees"`
}

// NewWeatherRecord creates a record for the day containing t.
// The date is normalized; all other fields are left for the caller.
func NewWeatherRecord(t time.Time, conditionID int) *WeatherRecord {
	return &WeatherRecord{
		Date:               NormalizeDate(t),
		WeatherConditionID: conditionID,
	}
}

// WithTemps sets the max and min temperatures in Celsius.
func (r *WeatherRecord) WithTemps(maxC, minC float64) *WeatherRecord {
	r.MaxTemp = maxC
	r.MinTemp = minC
	return r
}

// WithWind sets wind speed and direction.
func (r *WeatherRecord) WithWind(speed, degrees float64) *WeatherRecord {
	r.WindSpeed = speed
	r.Degrees = degrees
	return r
}

// WithAtmosphere sets humidity and pressure.
func (r *WeatherRecord) WithAtmosphere(humidity, pressure float64) *WeatherRecord {
	r.Humidity = humidity
	r.Pressure = pressure
	return r
}

// Time returns the record date as a UTC time.
func (r *WeatherRecord) Time() time.Time {
	return DateFromMillis(r.Date)
}

// NormalizeDate truncates t to midnight UTC and returns epoch millis.
func NormalizeDate(t time.Time) int64 {
	ms := t.UnixMilli()
	days := ms / DayInMillis
	if ms < 0 && ms%DayInMillis != 0 {
		days--
	}
	return days * DayInMillis
}

// IsDateNormalized reports whether ms falls exactly on a UTC midnight.
func IsDateNormalized(ms int64) bool {
	return ms%DayInMillis == 0
}

// DateFromMillis converts epoch millis to a UTC time.
func DateFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ParseDate parses "today", "tomorrow", YYYY-MM-DD, or epoch millis into a normalized date.
func ParseDate(s string, now time.Time) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return 0, fmt.Errorf("empty date")
	case "today":
		return NormalizeDate(now), nil
	case "tomorrow":
		return NormalizeDate(now) + DayInMillis, nil
	case "yesterday":
		return NormalizeDate(now) - DayInMillis, nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NormalizeDate(t), nil
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, tomorrow, or epoch millis)", s)
	}
	if !IsDateNormalized(ms) {
		return 0, fmt.Errorf("date %d is not a UTC midnight", ms)
	}
	return ms, nil
}
