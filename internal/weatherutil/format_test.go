// ABOUTME: Tests for date, temperature, and wind formatting.
// ABOUTME: Uses a fixed clock so relative day names are deterministic.
package weatherutil

import (
	"testing"
	"time"

	"github.com/harperreed/sunshine/internal/models"
	"golang.org/x/text/language"
)

// Monday afternoon.
var fixedNow = time.Date(2024, 6, 24, 15, 30, 0, 0, time.UTC)

func newTestFormatter(metric bool, lang language.Tag) *Formatter {
	f := NewFormatter(metric, lang)
	f.Now = func() time.Time { return fixedNow }
	return f
}

func dayOffset(n int) int64 {
	return models.NormalizeDate(fixedNow.AddDate(0, 0, n))
}

func TestFriendlyDateString(t *testing.T) {
	f := newTestFormatter(true, language.English)

	tests := []struct {
		name     string
		offset   int
		fullDate bool
		want     string
	}{
		{"today", 0, false, "Today, Jun 24"},
		{"tomorrow", 1, false, "Tomorrow"},
		{"later this week", 2, false, "Wednesday"},
		{"six days out", 6, false, "Sunday"},
		{"a week out", 7, false, "Monday, Jul 1"},
		{"yesterday", -1, false, "Sunday"},
		{"today full", 0, true, "Today, Jun 24"},
		{"tomorrow full", 1, true, "Tomorrow, Jun 25"},
		{"weekday full", 3, true, "Thursday, Jun 27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.FriendlyDateString(dayOffset(tt.offset), tt.fullDate)
			if got != tt.want {
				t.Errorf("FriendlyDateString(%d, %v) = %q, want %q", tt.offset, tt.fullDate, got, tt.want)
			}
		})
	}
}

func TestFriendlyDateStringTranslated(t *testing.T) {
	tests := []struct {
		name     string
		lang     language.Tag
		offset   int
		fullDate bool
		want     string
	}{
		{"de today", language.German, 0, false, "Heute, 24. Jun"},
		{"de tomorrow", language.German, 1, false, "Morgen"},
		{"de weekday", language.German, 2, false, "Mittwoch"},
		{"de a week out", language.German, 7, false, "Montag, 1. Jul"},
		{"de weekday full", language.German, 3, true, "Donnerstag, 27. Jun"},
		{"de region tag", language.MustParse("de-DE"), 2, false, "Mittwoch"},
		{"es today", language.Spanish, 0, false, "Hoy, 24 jun"},
		{"es weekday", language.Spanish, 2, false, "Miércoles"},
		{"es a week out", language.Spanish, 7, false, "Lunes, 1 jul"},
		{"unknown falls back to english", language.French, 7, false, "Monday, Jul 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFormatter(true, tt.lang)
			got := f.FriendlyDateString(dayOffset(tt.offset), tt.fullDate)
			if got != tt.want {
				t.Errorf("FriendlyDateString(%d, %v) = %q, want %q", tt.offset, tt.fullDate, got, tt.want)
			}
		})
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name    string
		metric  bool
		celsius float64
		want    string
	}{
		{"metric rounds down", true, 21.4, "21°"},
		{"metric rounds up", true, 9.6, "10°"},
		{"metric negative", true, -3.6, "-4°"},
		{"imperial", false, 20, "68°"},
		{"imperial freezing", false, 0, "32°"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFormatter(tt.metric, language.English)
			if got := f.FormatTemperature(tt.celsius); got != tt.want {
				t.Errorf("FormatTemperature(%v) = %q, want %q", tt.celsius, got, tt.want)
			}
		})
	}
}

func TestAccessibilityLabels(t *testing.T) {
	f := newTestFormatter(true, language.English)

	if got := f.ForecastLabel("Clear"); got != "Forecast: Clear" {
		t.Errorf("ForecastLabel = %q", got)
	}
	if got := f.HighLabel("21°"); got != "High: 21°" {
		t.Errorf("HighLabel = %q", got)
	}
	if got := f.LowLabel("10°"); got != "Low: 10°" {
		t.Errorf("LowLabel = %q", got)
	}

	es := newTestFormatter(true, language.Spanish)
	if got := es.HighLabel("21°"); got != "Máxima: 21°" {
		t.Errorf("Spanish HighLabel = %q", got)
	}
}

func TestCompassDirection(t *testing.T) {
	tests := map[float64]string{
		0:     "N",
		359:   "N",
		45:    "NE",
		90:    "E",
		135:   "SE",
		180:   "S",
		225:   "SW",
		270:   "W",
		315:   "NW",
		-90:   "W",
		720.0: "N",
	}
	for deg, want := range tests {
		if got := CompassDirection(deg); got != want {
			t.Errorf("CompassDirection(%v) = %q, want %q", deg, got, want)
		}
	}
}

func TestFormatWind(t *testing.T) {
	metric := newTestFormatter(true, language.English)
	if got := metric.FormatWind(10, 180); got != "10 km/h S" {
		t.Errorf("metric FormatWind = %q", got)
	}

	imperial := newTestFormatter(false, language.English)
	if got := imperial.FormatWind(10, 90); got != "6 mph E" {
		t.Errorf("imperial FormatWind = %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	if ParseLanguage("").String() != "en" {
		t.Error("empty string should default to English")
	}
	if ParseLanguage("not a tag!!").String() != "en" {
		t.Error("garbage should default to English")
	}
	if got := ParseLanguage("de"); got.String() != "de" {
		t.Error("de should parse to German")
	}
}
