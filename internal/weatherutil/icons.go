// ABOUTME: Maps weather condition ids to icon names and descriptions.
// ABOUTME: Icon names follow the ic_* (list) and art_* (today) drawable naming.
package weatherutil

import "fmt"

// Icon names a weather image.
type Icon string

const (
	smallPrefix = "ic_"
	largePrefix = "art_"
)

// Condition categories shared by the small and large icon sets.
const (
	CategoryStorm       = "storm"
	CategoryLightRain   = "light_rain"
	CategoryRain        = "rain"
	CategorySnow        = "snow"
	CategoryFog         = "fog"
	CategoryClear       = "clear"
	CategoryLightClouds = "light_clouds"
	CategoryClouds      = "clouds"
)

// CategoryForCondition returns the icon category for a condition id.
// Unknown ids fall back to storm.
func CategoryForCondition(id int) string {
	switch {
	case id >= 200 && id <= 232:
		return CategoryStorm
	case id >= 300 && id <= 321:
		return CategoryLightRain
	case id >= 500 && id <= 504:
		return CategoryRain
	case id == 511:
		return CategorySnow
	case id >= 520 && id <= 531:
		return CategoryRain
	case id >= 600 && id <= 622:
		return CategorySnow
	case id >= 701 && id <= 761:
		return CategoryFog
	case id == 771 || id == 781:
		return CategoryStorm
	case id == 800:
		return CategoryClear
	case id == 801:
		return CategoryLightClouds
	case id >= 802 && id <= 804:
		return CategoryClouds
	case id >= 900 && id <= 906:
		return CategoryStorm
	case id >= 958 && id <= 962:
		return CategoryStorm
	case id >= 951 && id <= 957:
		return CategoryClear
	}
	return CategoryStorm
}

// IconForCondition returns the large art for the today slot or the small icon otherwise.
func IconForCondition(id int, large bool) Icon {
	if large {
		return Icon(largePrefix + CategoryForCondition(id))
	}
	return Icon(smallPrefix + CategoryForCondition(id))
}

// Category strips the size prefix from an icon name.
func (i Icon) Category() string {
	s := string(i)
	switch {
	case len(s) > len(largePrefix) && s[:len(largePrefix)] == largePrefix:
		return s[len(largePrefix):]
	case len(s) > len(smallPrefix) && s[:len(smallPrefix)] == smallPrefix:
		return s[len(smallPrefix):]
	}
	return s
}

// IsLarge reports whether the icon is from the large art set.
func (i Icon) IsLarge() bool {
	return len(i) > len(largePrefix) && string(i[:len(largePrefix)]) == largePrefix
}

var conditionDescriptions = map[int]string{
	200: "Thunderstorm with light rain",
	201: "Thunderstorm with rain",
	202: "Thunderstorm with heavy rain",
	210: "Light thunderstorm",
	211: "Thunderstorm",
	212: "Heavy thunderstorm",
	221: "Ragged thunderstorm",
	230: "Thunderstorm with light drizzle",
	231: "Thunderstorm with drizzle",
	232: "Thunderstorm with heavy drizzle",
	300: "Light intensity drizzle",
	301: "Drizzle",
	302: "Heavy intensity drizzle",
	310: "Light intensity drizzle rain",
	311: "Drizzle rain",
	312: "Heavy intensity drizzle rain",
	313: "Shower rain and drizzle",
	314: "Heavy shower rain and drizzle",
	321: "Shower drizzle",
	500: "Light rain",
	501: "Moderate rain",
	502: "Heavy intensity rain",
	503: "Very heavy rain",
	504: "Extreme rain",
	511: "Freezing rain",
	520: "Light intensity shower rain",
	521: "Shower rain",
	522: "Heavy intensity shower rain",
	531: "Ragged shower rain",
	600: "Light snow",
	601: "Snow",
	602: "Heavy snow",
	611: "Sleet",
	612: "Shower sleet",
	615: "Light rain and snow",
	616: "Rain and snow",
	620: "Light shower snow",
	621: "Shower snow",
	622: "Heavy shower snow",
	701: "Mist",
	711: "Smoke",
	721: "Haze",
	731: "Sand, dust whirls",
	741: "Fog",
	751: "Sand",
	761: "Dust",
	762: "Volcanic ash",
	771: "Squalls",
	781: "Tornado",
	800: "Clear",
	801: "Mostly clear",
	802: "Scattered clouds",
	803: "Broken clouds",
	804: "Overcast clouds",
	900: "Tornado",
	901: "Tropical storm",
	902: "Hurricane",
	903: "Cold",
	904: "Hot",
	905: "Windy",
	906: "Hail",
	951: "Calm",
	952: "Light breeze",
	953: "Gentle breeze",
	954: "Breeze",
	955: "Fresh breeze",
	956: "Strong breeze",
	957: "High wind",
	958: "Gale",
	959: "Severe gale",
	960: "Storm",
	961: "Violent storm",
	962: "Hurricane",
}

// DescriptionForCondition returns the English description of a condition id.
func DescriptionForCondition(id int) string {
	if d, ok := conditionDescriptions[id]; ok {
		return d
	}
	return fmt.Sprintf("Unknown (%d)", id)
}
