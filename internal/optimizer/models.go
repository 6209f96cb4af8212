package optimizer

import (
	"smartroute/internal/providers/tomtom"
	"smartroute/internal/types"
)

// Candidate is one route alternative carried through the scoring pipeline.
type Candidate struct {
	ID                 int                `json:"id"`
	Geometry           []types.Coordinate `json:"-"`
	DistanceKm         float64            `json:"distance_km"`
	DurationBaseMin    float64            `json:"duration_base_min"`
	TrafficFactor      float64            `json:"traffic_factor"`
	WeatherFactor      float64            `json:"weather_factor"`
	TollCount          int                `json:"toll_count"`
	UnpavedMeters      float64            `json:"unpaved_meters"`
	WeatherDescription string             `json:"weather_description"`
	ScorePreliminary   float64            `json:"score_prelim"`
	ScoreFinal         float64            `json:"score_final,omitempty"`
}

// TrafficSegment is a colored slice of the winning route's geometry.
type TrafficSegment struct {
	Start      types.Coordinate `json:"start"`
	End        types.Coordinate `json:"end"`
	SpeedRatio float64          `json:"speed_ratio"`
	Color      string           `json:"color"`
	Status     string           `json:"status"`
}

// OptimizedRoute is the outcome of the full pipeline for one request.
type OptimizedRoute struct {
	Winner              Candidate
	Candidates          []Candidate
	Segments            []TrafficSegment
	Incidents           []tomtom.Incident
	Reasoning           string
	DurationAdjustedMin float64
	// ScoringUsed reports whether the model's analysis was applied, as
	// opposed to the heuristic fallback.
	ScoringUsed bool
}

// Route-level congestion thresholds, applied to the combined traffic factor.
const (
	colorSevere   = "#DC2626"
	colorHeavy    = "#F59E0B"
	colorModerate = "#FBBF24"
	colorFree     = "#10B981"
)

// TrafficColor maps a route traffic factor to a display color.
func TrafficColor(factor float64) string {
	switch {
	case factor >= 2.0:
		return colorSevere
	case factor >= 1.5:
		return colorHeavy
	case factor >= 1.2:
		return colorModerate
	default:
		return colorFree
	}
}

// TrafficLevel maps a route traffic factor to a congestion label.
func TrafficLevel(factor float64) string {
	switch {
	case factor >= 2.0:
		return "severe"
	case factor >= 1.5:
		return "heavy"
	case factor >= 1.2:
		return "moderate"
	default:
		return "free"
	}
}
