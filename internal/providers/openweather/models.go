package openweather

// Conditions holds the subset of the current-weather payload the optimizer
// cares about.
type Conditions struct {
	Condition        string  `json:"condition"` // Rain, Snow, Clear, ...
	Description      string  `json:"description"`
	TempCelsius      float64 `json:"temp_celsius"`
	FeelsLike        float64 `json:"feels_like"`
	Humidity         float64 `json:"humidity"`
	VisibilityMeters float64 `json:"visibility_meters"`
	WindSpeedMS      float64 `json:"wind_speed_ms"`
	CloudsPercent    float64 `json:"clouds_percent"`
	Rain1hMM         float64 `json:"rain_1h_mm"`
	Snow1hMM         float64 `json:"snow_1h_mm"`
}

// weatherAPIResponse mirrors the /data/2.5/weather JSON payload.
type weatherAPIResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Visibility float64 `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneHour float64 `json:"1h"`
	} `json:"snow"`
}
