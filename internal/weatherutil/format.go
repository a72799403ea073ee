// ABOUTME: Locale-aware formatting of dates, temperatures, and wind for display.
// ABOUTME: Built on golang.org/x/text message printers with a small label catalog.
package weatherutil

import (
	"math"
	"time"

	"github.com/harperreed/sunshine/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys translated through the label catalog.
const (
	msgToday    = "Today"
	msgTomorrow = "Tomorrow"
	msgForecast = "Forecast: %s"
	msgHigh     = "High: %s"
	msgLow      = "Low: %s"
	// msgMonthDay takes the abbreviated month then the day of month.
	msgMonthDay = "%[1]s %[2]d"
)

// Weekday names are keyed by time.Weekday.String, months by their English abbreviation.
var (
	germanDays    = []string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}
	spanishDays   = []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	germanMonths  = []string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"}
	spanishMonths = []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
)

var labels = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{msgToday, msgTomorrow, msgForecast, msgHigh, msgLow, msgMonthDay} {
		_ = b.SetString(language.English, key, key)
	}
	_ = b.SetString(language.German, msgToday, "Heute")
	_ = b.SetString(language.German, msgTomorrow, "Morgen")
	_ = b.SetString(language.German, msgForecast, "Vorhersage: %s")
	_ = b.SetString(language.German, msgHigh, "Höchstwert: %s")
	_ = b.SetString(language.German, msgLow, "Tiefstwert: %s")
	_ = b.SetString(language.German, msgMonthDay, "%[2]d. %[1]s")
	_ = b.SetString(language.Spanish, msgToday, "Hoy")
	_ = b.SetString(language.Spanish, msgTomorrow, "Mañana")
	_ = b.SetString(language.Spanish, msgForecast, "Pronóstico: %s")
	_ = b.SetString(language.Spanish, msgHigh, "Máxima: %s")
	_ = b.SetString(language.Spanish, msgLow, "Mínima: %s")
	_ = b.SetString(language.Spanish, msgMonthDay, "%[2]d %[1]s")

	for d := time.Sunday; d <= time.Saturday; d++ {
		_ = b.SetString(language.English, d.String(), d.String())
		_ = b.SetString(language.German, d.String(), germanDays[d])
		_ = b.SetString(language.Spanish, d.String(), spanishDays[d])
	}
	for m := time.January; m <= time.December; m++ {
		key := monthKey(m)
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.German, key, germanMonths[m-1])
		_ = b.SetString(language.Spanish, key, spanishMonths[m-1])
	}
	return b
}

func monthKey(m time.Month) string {
	return m.String()[:3]
}

// Formatter renders forecast values for one language and unit system.
type Formatter struct {
	metric  bool
	printer *message.Printer

	// Now is the clock used to decide Today/Tomorrow. Defaults to time.Now.
	Now func() time.Time
}

// NewFormatter creates a Formatter. Temperatures are shown in Celsius when metric is set.
func NewFormatter(metric bool, lang language.Tag) *Formatter {
	return &Formatter{
		metric:  metric,
		printer: message.NewPrinter(lang, message.Catalog(labels)),
		Now:     time.Now,
	}
}

// ParseLanguage returns the tag for a BCP 47 string, or English when it cannot be parsed.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// IsMetric reports whether temperatures are rendered in Celsius.
func (f *Formatter) IsMetric() bool {
	return f.metric
}

// FormatTemperature renders a Celsius value as a whole number of degrees in the configured units.
func (f *Formatter) FormatTemperature(celsius float64) string {
	temp := celsius
	if !f.metric {
		temp = CelsiusToFahrenheit(celsius)
	}
	return f.printer.Sprintf("%.0f°", temp)
}

// CelsiusToFahrenheit converts a temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32
}

// FriendlyDateString renders a normalized date relative to today.
//
// Today is "Today, Jun 24". Within the next week only the day name is shown
// ("Tomorrow", "Wednesday"). Further out the full "Monday, Jul 1" form is used.
// showFullDate forces the full form, keeping Today/Tomorrow in place of the weekday.
func (f *Formatter) FriendlyDateString(date int64, showFullDate bool) string {
	day := floorDiv(date, models.DayInMillis)
	today := floorDiv(models.NormalizeDate(f.Now()), models.DayInMillis)
	t := models.DateFromMillis(date)

	if day == today || showFullDate {
		return f.dayName(day, today, t) + ", " + f.monthDay(t)
	}
	if day < today+7 {
		return f.dayName(day, today, t)
	}
	return f.weekday(t) + ", " + f.monthDay(t)
}

// monthDay renders "Jun 24" in the formatter's language.
func (f *Formatter) monthDay(t time.Time) string {
	return f.printer.Sprintf(msgMonthDay, f.printer.Sprintf(monthKey(t.Month())), t.Day())
}

func (f *Formatter) weekday(t time.Time) string {
	return f.printer.Sprintf(t.Weekday().String())
}

func (f *Formatter) dayName(day, today int64, t time.Time) string {
	switch day - today {
	case 0:
		return f.printer.Sprintf(msgToday)
	case 1:
		return f.printer.Sprintf(msgTomorrow)
	}
	return f.weekday(t)
}

// ForecastLabel is the accessibility text for a description.
func (f *Formatter) ForecastLabel(description string) string {
	return f.printer.Sprintf(msgForecast, description)
}

// HighLabel is the accessibility text for a formatted high temperature.
func (f *Formatter) HighLabel(temp string) string {
	return f.printer.Sprintf(msgHigh, temp)
}

// LowLabel is the accessibility text for a formatted low temperature.
func (f *Formatter) LowLabel(temp string) string {
	return f.printer.Sprintf(msgLow, temp)
}

// FormatWind renders wind speed (km/h) and a compass direction.
func (f *Formatter) FormatWind(speed, degrees float64) string {
	if f.metric {
		return f.printer.Sprintf("%.0f km/h %s", speed, CompassDirection(degrees))
	}
	return f.printer.Sprintf("%.0f mph %s", speed*0.621371192237334, CompassDirection(degrees))
}

// FormatHumidity renders relative humidity.
func (f *Formatter) FormatHumidity(humidity float64) string {
	return f.printer.Sprintf("%.0f %%", humidity)
}

// FormatPressure renders pressure in hectopascals.
func (f *Formatter) FormatPressure(pressure float64) string {
	return f.printer.Sprintf("%.0f hPa", pressure)
}

// CompassDirection maps degrees to one of eight compass points.
func CompassDirection(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	switch {
	case d >= 337.5 || d < 22.5:
		return "N"
	case d < 67.5:
		return "NE"
	case d < 112.5:
		return "E"
	case d < 157.5:
		return "SE"
	case d < 202.5:
		return "S"
	case d < 247.5:
		return "SW"
	case d < 292.5:
		return "W"
	}
	return "NW"
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
