package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// API Docs: https://openweathermap.org/current
const baseWeatherURL = "https://api.openweathermap.org/data/2.5"

// Client talks to the OpenWeather current-weather API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an OpenWeather client. The key is required.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openweather api key is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseWeatherURL,
		apiKey:     apiKey,
	}, nil
}

// GetWeather fetches current conditions for a coordinate. Errors are for
// the caller to degrade on; they never carry partial data.
func (c *Client) GetWeather(ctx context.Context, latitude, longitude float64) (*Conditions, error) {
	u, err := url.Parse(c.baseURL + "/weather")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", fmt.Sprintf("%f", latitude))
	q.Set("lon", fmt.Sprintf("%f", longitude))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "pt_br")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	conditions := &Conditions{
		Condition:        "Clear",
		TempCelsius:      apiResp.Main.Temp,
		FeelsLike:        apiResp.Main.FeelsLike,
		Humidity:         apiResp.Main.Humidity,
		VisibilityMeters: apiResp.Visibility,
		WindSpeedMS:      apiResp.Wind.Speed,
		CloudsPercent:    apiResp.Clouds.All,
		Rain1hMM:         apiResp.Rain.OneHour,
		Snow1hMM:         apiResp.Snow.OneHour,
	}
	if len(apiResp.Weather) > 0 {
		if apiResp.Weather[0].Main != "" {
			conditions.Condition = apiResp.Weather[0].Main
		}
		conditions.Description = apiResp.Weather[0].Description
	}
	return conditions, nil
}

// conditionsPT maps OpenWeather condition tags to Portuguese, used when the
// API description is empty.
var conditionsPT = map[string]string{
	"Clear":        "Céu limpo",
	"Clouds":       "Nublado",
	"Rain":         "Chuva",
	"Drizzle":      "Garoa",
	"Thunderstorm": "Tempestade",
	"Snow":         "Neve",
	"Mist":         "Neblina",
	"Fog":          "Névoa densa",
	"Haze":         "Neblina seca",
	"Dust":         "Poeira",
	"Sand":         "Areia",
	"Ash":          "Cinzas",
	"Squall":       "Rajada",
	"Tornado":      "Tornado",
}

// Describe formats conditions for display, e.g. "Chuva leve, 22.3°C".
// A nil snapshot yields "Clima desconhecido".
func Describe(w *Conditions) string {
	if w == nil {
		return "Clima desconhecido"
	}

	description := w.Description
	if description == "" {
		if pt, ok := conditionsPT[w.Condition]; ok {
			description = pt
		} else {
			description = w.Condition
		}
	} else {
		description = capitalize(description)
	}

	return fmt.Sprintf("%s, %.1f°C", description, w.TempCelsius)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	first := runes[0]
	if first >= 'a' && first <= 'z' {
		first = first - 'a' + 'A'
	}
	return string(first) + string(runes[1:])
}
