package optimizer

import (
	"context"
	"sync"

	"smartroute/internal/geo"
	"smartroute/internal/providers/openweather"
	"smartroute/internal/providers/tomtom"
	"smartroute/internal/types"
)

// roadAttributes estimates toll and surface data for a route. Real road
// attributes are not exposed by the routing provider, so routes past the
// urban threshold are assumed to cross one toll plaza.
// TODO: replace with ORS extra_info=tollways once the basic client requests it.
func roadAttributes(distanceKm float64) (tollCount int, unpavedMeters float64) {
	if distanceKm > shortRouteKm {
		return 1, 0
	}
	return 0, 0
}

// buildCandidate enriches one route alternative with traffic and weather
// factors. Provider failures degrade to neutral factors, never errors.
func (s *Service) buildCandidate(ctx context.Context, id int, route tomtom.RouteAlternative, origin, destination types.Coordinate) Candidate {
	distanceKm := route.DistanceMeters / 1000

	if len(route.Geometry) < 2 {
		s.logger.Warn("route has no usable geometry, falling back to summary data", "route_id", id)
		return s.buildSummaryCandidate(ctx, id, route, origin, destination)
	}

	samples := s.sampler.Sample(route.Geometry, distanceKm)
	s.logger.Info("sampled route geometry",
		"route_id", id,
		"distance_km", distanceKm,
		"samples", len(samples),
		"total_points", len(route.Geometry))

	flows := s.collectFlows(ctx, samples)

	var trafficFactor float64
	if len(flows) > 0 {
		trafficFactor = routeTrafficFactor(flows)
	} else {
		trafficFactor = summaryTrafficFactor(route.TrafficDelaySeconds, route.TravelTimeSeconds)
		s.logger.Warn("no flow samples collected, using summary traffic factor",
			"route_id", id, "traffic_factor", trafficFactor)
	}

	avgWeatherFactor, weatherDescription := s.collectWeather(ctx, samples[0], samples[len(samples)-1])

	tollCount, unpavedMeters := roadAttributes(distanceKm)

	return Candidate{
		ID:                 id,
		Geometry:           route.Geometry,
		DistanceKm:         distanceKm,
		DurationBaseMin:    route.TravelTimeSeconds / 60,
		TrafficFactor:      trafficFactor,
		WeatherFactor:      avgWeatherFactor,
		TollCount:          tollCount,
		UnpavedMeters:      unpavedMeters,
		WeatherDescription: weatherDescription,
		ScorePreliminary:   route.TravelTimeSeconds * trafficFactor * avgWeatherFactor,
	}
}

// buildSummaryCandidate handles routes without geometry. Traffic comes from
// the routing summary and weather from the straight-line midpoint.
func (s *Service) buildSummaryCandidate(ctx context.Context, id int, route tomtom.RouteAlternative, origin, destination types.Coordinate) Candidate {
	trafficFactor := summaryTrafficFactor(route.TrafficDelaySeconds, route.TravelTimeSeconds)

	mid := geo.Midpoint(origin, destination)
	conditions, err := s.weather.GetWeather(ctx, mid.Latitude, mid.Longitude)
	if err != nil {
		s.logger.Warn("failed to fetch midpoint weather", "route_id", id, "error", err)
		conditions = nil
	}

	return Candidate{
		ID:                 id,
		Geometry:           route.Geometry,
		DistanceKm:         route.DistanceMeters / 1000,
		DurationBaseMin:    route.TravelTimeSeconds / 60,
		TrafficFactor:      trafficFactor,
		WeatherFactor:      weatherFactor(conditions),
		WeatherDescription: openweather.Describe(conditions),
		ScorePreliminary:   route.TravelTimeSeconds * trafficFactor * weatherFactor(conditions),
	}
}

// collectFlows queries point traffic concurrently for every sample. Failed
// lookups are dropped rather than treated as neutral, so the average only
// reflects points that actually answered.
func (s *Service) collectFlows(ctx context.Context, samples []types.Coordinate) []*tomtom.TrafficFlow {
	results := make([]*tomtom.TrafficFlow, len(samples))

	var wg sync.WaitGroup
	for i, point := range samples {
		wg.Add(1)
		go func(i int, point types.Coordinate) {
			defer wg.Done()
			flow, err := s.routing.GetTrafficFlow(ctx, point.Latitude, point.Longitude)
			if err != nil {
				s.logger.Debug("failed to fetch traffic flow for sample", "sample", i, "error", err)
				return
			}
			results[i] = flow
		}(i, point)
	}
	wg.Wait()

	flows := make([]*tomtom.TrafficFlow, 0, len(results))
	for _, flow := range results {
		if flow != nil {
			flows = append(flows, flow)
		}
	}
	return flows
}

// collectWeather fetches conditions at the route endpoints concurrently and
// averages their factors. A failed lookup counts as neutral for that
// endpoint only.
func (s *Service) collectWeather(ctx context.Context, first, last types.Coordinate) (float64, string) {
	var (
		wg                 sync.WaitGroup
		originConditions   *openweather.Conditions
		destConditions     *openweather.Conditions
		originErr, destErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		originConditions, originErr = s.weather.GetWeather(ctx, first.Latitude, first.Longitude)
	}()
	go func() {
		defer wg.Done()
		destConditions, destErr = s.weather.GetWeather(ctx, last.Latitude, last.Longitude)
	}()
	wg.Wait()

	if originErr != nil || destErr != nil {
		s.logger.Warn("failed to fetch endpoint weather", "origin_error", originErr, "dest_error", destErr)
	}
	if originErr != nil {
		originConditions = nil
	}
	if destErr != nil {
		destConditions = nil
	}

	avg := (weatherFactor(originConditions) + weatherFactor(destConditions)) / 2
	return avg, openweather.Describe(originConditions)
}
