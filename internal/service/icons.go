package service

// DefaultIcon is shown for meter types without a dedicated icon.
const DefaultIcon = "carbon:not-available"

var iconsByType = map[string]string{
	"Ambient Cloud Cover":           "mdi:apple-icloud",
	"Ambient Dew Point":             "mdi:water-thermometer-outline",
	"Ambient Humidity":              "mdi:cloud-percent",
	"Ambient Real Feel Temperature": "carbon:temperature-feels-like",
	"Ambient Temperature":           "carbon:temperature-fahrenheit",
	"Ambient Wind Direction":        "mdi:windsock",
	"Ambient Wind Speed":            "mdi:wind-power",
	"Average Grid Emissions":        "tabler:brand-carbon",
	"Marginal Grid Emissions":       "mdi:molecule-co2",
	"Occupancy":                     "mdi:account-plus",
	"Electric":                      "mdi:lightning-bolt-outline",
}

// IconFor returns the icon name for a meter type.
func IconFor(meterType string) string {
	if icon, ok := iconsByType[meterType]; ok {
		return icon
	}
	return DefaultIcon
}
