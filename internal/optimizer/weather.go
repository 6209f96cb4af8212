package optimizer

import (
	"smartroute/internal/providers/openweather"
)

// maxWeatherFactor bounds the combined weather multiplier.
const maxWeatherFactor = 2.5

// weatherFactor converts observed conditions into a delay multiplier. The
// base factor comes from the condition class and precipitation volume, then
// visibility and wind can only raise it. A nil observation is neutral.
func weatherFactor(c *openweather.Conditions) float64 {
	if c == nil {
		return 1.0
	}

	var factor float64
	switch {
	case c.Condition == "Thunderstorm" || c.Condition == "Tornado":
		factor = 2.5
	case c.Condition == "Snow" || c.Snow1hMM > 5:
		factor = 2.0
	case c.Condition == "Rain" || c.Rain1hMM > 5:
		factor = 1.5
	case c.Condition == "Drizzle" || c.Condition == "Mist" || c.Condition == "Fog":
		factor = 1.3
	case c.Condition == "Clouds":
		factor = 1.1
	default:
		factor = 1.0
	}

	switch {
	case c.VisibilityMeters > 0 && c.VisibilityMeters < 1000:
		factor = max(factor, 2.0)
	case c.VisibilityMeters > 0 && c.VisibilityMeters < 5000:
		factor = max(factor, 1.4)
	}

	switch {
	case c.WindSpeedMS > 15:
		factor = max(factor, 1.5)
	case c.WindSpeedMS > 10:
		factor = max(factor, 1.2)
	}

	return min(factor, maxWeatherFactor)
}
