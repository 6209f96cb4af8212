package optimizer

import (
	"context"
	"errors"
	"log/slog"

	"smartroute/internal/providers/groq"
	"smartroute/internal/providers/openweather"
	"smartroute/internal/providers/tomtom"
	"smartroute/internal/types"
)

// ErrNoRoute is returned when the routing provider has no alternatives for
// the requested pair. Callers fall back to basic routing.
var ErrNoRoute = errors.New("no route between origin and destination")

// routeAlternatives is how many alternatives are requested per optimization.
const routeAlternatives = 2

// RoutingProvider supplies route alternatives and live traffic data.
type RoutingProvider interface {
	GetRouteWithTraffic(ctx context.Context, origin, destination types.Coordinate, alternatives int) ([]tomtom.RouteAlternative, error)
	GetTrafficFlow(ctx context.Context, latitude, longitude float64) (*tomtom.TrafficFlow, error)
	GetTrafficIncidents(ctx context.Context, minLat, minLon, maxLat, maxLon float64) ([]tomtom.Incident, error)
}

// WeatherProvider supplies current conditions at a point.
type WeatherProvider interface {
	GetWeather(ctx context.Context, latitude, longitude float64) (*openweather.Conditions, error)
}

// ScoringProvider ranks candidates against the user's constraints.
type ScoringProvider interface {
	AnalyzeRoutes(ctx context.Context, constraints types.Constraints, candidates []groq.ScoringCandidate) (*groq.Analysis, error)
}

// Service runs the full route optimization pipeline.
type Service struct {
	routing RoutingProvider
	weather WeatherProvider
	scoring ScoringProvider
	sampler *AdaptiveSampler
	logger  *slog.Logger
}

// NewService creates the optimizer with live provider clients.
func NewService(tomtomKey string, tomtomBearer bool, openweatherKey, groqKey, groqModel string, logger *slog.Logger) (*Service, error) {
	routing, err := tomtom.NewClient(tomtomKey, tomtomBearer, logger)
	if err != nil {
		return nil, err
	}
	weather, err := openweather.NewClient(openweatherKey)
	if err != nil {
		return nil, err
	}
	scoring, err := groq.NewClient(groqKey, groqModel, logger)
	if err != nil {
		return nil, err
	}
	return NewServiceWithProviders(routing, weather, scoring, logger), nil
}

// NewServiceWithProviders creates the optimizer with injected providers.
// Used by tests.
func NewServiceWithProviders(routing RoutingProvider, weather WeatherProvider, scoring ScoringProvider, logger *slog.Logger) *Service {
	return &Service{
		routing: routing,
		weather: weather,
		scoring: scoring,
		sampler: NewAdaptiveSampler(),
		logger:  logger.With("component", "optimizer"),
	}
}

// OptimizeRoute runs the pipeline: fetch alternatives, enrich each with
// traffic and weather factors, score, then colorize the winner and attach
// nearby incidents. Provider failures past the routing step degrade rather
// than fail the request.
func (s *Service) OptimizeRoute(ctx context.Context, origin, destination types.Coordinate, constraints types.Constraints) (*OptimizedRoute, error) {
	s.logger.Info("optimizing route",
		"origin_lat", origin.Latitude, "origin_lon", origin.Longitude,
		"dest_lat", destination.Latitude, "dest_lon", destination.Longitude,
		"avoid", constraints.Avoid, "prefer", constraints.Prefer)

	routes, err := s.routing.GetRouteWithTraffic(ctx, origin, destination, routeAlternatives)
	if err != nil {
		s.logger.Error("routing provider failed", "error", err)
		return nil, ErrNoRoute
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}
	s.logger.Info("received route alternatives", "count", len(routes))

	candidates := make([]Candidate, 0, len(routes))
	for i, route := range routes {
		candidates = append(candidates, s.buildCandidate(ctx, i+1, route, origin, destination))
	}

	selectedIdx, reasoning, scoringUsed := s.scoreCandidates(ctx, constraints, candidates)
	winner := candidates[selectedIdx]

	adjusted := winner.ScorePreliminary
	if winner.ScoreFinal > 0 {
		adjusted = winner.ScoreFinal
	}

	result := &OptimizedRoute{
		Winner:              winner,
		Candidates:          candidates,
		Reasoning:           reasoning,
		DurationAdjustedMin: adjusted / 60,
		ScoringUsed:         scoringUsed,
	}

	if len(winner.Geometry) >= 2 {
		result.Segments = s.colorizeRoute(ctx, winner.Geometry)
		result.Incidents = s.collectIncidents(ctx, winner.Geometry)
	}

	s.logger.Info("optimization complete",
		"selected_route", winner.ID,
		"scoring_used", scoringUsed,
		"segments", len(result.Segments),
		"incidents", len(result.Incidents))
	return result, nil
}

// collectIncidents fetches incidents inside the route's bounding box.
// Failures degrade to an empty list.
func (s *Service) collectIncidents(ctx context.Context, geometry []types.Coordinate) []tomtom.Incident {
	minLat, minLon := geometry[0].Latitude, geometry[0].Longitude
	maxLat, maxLon := minLat, minLon
	for _, p := range geometry[1:] {
		minLat = min(minLat, p.Latitude)
		maxLat = max(maxLat, p.Latitude)
		minLon = min(minLon, p.Longitude)
		maxLon = max(maxLon, p.Longitude)
	}

	incidents, err := s.routing.GetTrafficIncidents(ctx, minLat, minLon, maxLat, maxLon)
	if err != nil {
		s.logger.Warn("failed to fetch traffic incidents", "error", err)
		return nil
	}
	return incidents
}
