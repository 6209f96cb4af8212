package groq

// ScoringCandidate is the projection of a route candidate sent to the
// scoring model. Geometry, traffic segments and incidents are stripped
// before the call; the model only needs the numeric features.
type ScoringCandidate struct {
	ID                 int     `json:"id"`
	DistanceKm         float64 `json:"distance_km"`
	DurationBaseMin    float64 `json:"duration_base_min"`
	TrafficFactor      float64 `json:"traffic_factor"`
	WeatherFactor      float64 `json:"weather_factor"`
	TollCount          int     `json:"toll_count"`
	UnpavedMeters      float64 `json:"unpaved_meters"`
	WeatherDescription string  `json:"weather_description,omitempty"`
}

// Analysis is the validated scoring result: penalty weights in seconds per
// avoid tag, the chosen candidate id and a short justification.
type Analysis struct {
	Weights           map[string]float64 `json:"weights"`
	SelectedCandidate int                `json:"selected_candidate"`
	Reasoning         string             `json:"reasoning"`
}

// chatRequest mirrors the chat-completions request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse mirrors the chat-completions response payload.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
