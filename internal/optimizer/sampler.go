package optimizer

import (
	"smartroute/internal/geo"
	"smartroute/internal/types"
)

// Distance-adaptive sampling intervals. Short routes get dense samples,
// long routes sparse ones, so external lookups stay proportional to route
// length rather than point count.
const (
	shortRouteKm     = 15.0
	mediumRouteKm    = 100.0
	shortIntervalKm  = 0.8
	mediumIntervalKm = 3.0
	longIntervalKm   = 15.0

	// maxSamples caps the number of points offered to external providers.
	maxSamples = 25
)

// AdaptiveSampler thins a route geometry to representative points.
type AdaptiveSampler struct{}

// NewAdaptiveSampler creates a sampler with the default intervals.
func NewAdaptiveSampler() *AdaptiveSampler {
	return &AdaptiveSampler{}
}

// intervalFor picks the sampling interval for a route of the given length.
func (s *AdaptiveSampler) intervalFor(routeKm float64) float64 {
	switch {
	case routeKm < shortRouteKm:
		return shortIntervalKm
	case routeKm < mediumRouteKm:
		return mediumIntervalKm
	default:
		return longIntervalKm
	}
}

// Sample walks the geometry accumulating distance and keeps a point each time
// the interval is crossed. The first and last points are always kept. The
// result is capped at maxSamples via uniform index resampling.
func (s *AdaptiveSampler) Sample(geometry []types.Coordinate, routeKm float64) []types.Coordinate {
	if len(geometry) < 2 {
		return geometry
	}

	interval := s.intervalFor(routeKm)

	sampled := []types.Coordinate{geometry[0]}
	accumulated := 0.0
	for i := 1; i < len(geometry); i++ {
		accumulated += geo.DistanceKm(geometry[i-1], geometry[i])
		if accumulated >= interval {
			sampled = append(sampled, geometry[i])
			accumulated = 0.0
		}
	}

	last := geometry[len(geometry)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}

	if len(sampled) > maxSamples {
		sampled = resample(sampled, maxSamples)
	}
	return sampled
}

// resample picks n points at uniform index spacing, always keeping the last.
func resample(points []types.Coordinate, n int) []types.Coordinate {
	step := float64(len(points)) / float64(n)
	out := make([]types.Coordinate, 0, n)
	for i := 0; i < n-1; i++ {
		out = append(out, points[int(float64(i)*step)])
	}
	out = append(out, points[len(points)-1])
	return out
}
