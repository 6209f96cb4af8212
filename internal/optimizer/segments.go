package optimizer

import (
	"context"
	"sync"

	"smartroute/internal/geo"
	"smartroute/internal/providers/tomtom"
	"smartroute/internal/types"
)

// segmentIntervalMeters is the fixed resampling distance for coloring. The
// colorizer samples denser than the factor pipeline because its output is
// drawn on the map.
const segmentIntervalMeters = 500.0

// indexedPoint is a geometry point that remembers its original index, so
// consecutive samples can be turned back into segments.
type indexedPoint struct {
	point types.Coordinate
	index int
}

// sampleForSegments resamples the geometry at a fixed interval, always
// keeping the first and last points.
func sampleForSegments(geometry []types.Coordinate, intervalMeters float64) []indexedPoint {
	if len(geometry) < 2 {
		return nil
	}

	sampled := []indexedPoint{{point: geometry[0], index: 0}}
	accumulated := 0.0
	for i := 1; i < len(geometry); i++ {
		accumulated += geo.DistanceMeters(geometry[i-1], geometry[i])
		if accumulated >= intervalMeters {
			sampled = append(sampled, indexedPoint{point: geometry[i], index: i})
			accumulated = 0.0
		}
	}

	if sampled[len(sampled)-1].index != len(geometry)-1 {
		sampled = append(sampled, indexedPoint{point: geometry[len(geometry)-1], index: len(geometry) - 1})
	}
	return sampled
}

// colorizeRoute splits the winning route into colored traffic segments. Each
// segment's flow is read at its midpoint; segments without data degrade to
// green so the map never shows gaps.
func (s *Service) colorizeRoute(ctx context.Context, geometry []types.Coordinate) []TrafficSegment {
	sampled := sampleForSegments(geometry, segmentIntervalMeters)
	if len(sampled) < 2 {
		s.logger.Warn("geometry too short for traffic segmentation", "points", len(geometry))
		return nil
	}

	flows := make([]*tomtom.TrafficFlow, len(sampled)-1)
	var wg sync.WaitGroup
	for i := 0; i < len(sampled)-1; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mid := geo.Midpoint(sampled[i].point, sampled[i+1].point)
			flow, err := s.routing.GetTrafficFlow(ctx, mid.Latitude, mid.Longitude)
			if err != nil {
				s.logger.Debug("failed to fetch segment flow", "segment", i, "error", err)
				return
			}
			flows[i] = flow
		}(i)
	}
	wg.Wait()

	segments := make([]TrafficSegment, 0, len(sampled)-1)
	for i := 0; i < len(sampled)-1; i++ {
		segments = append(segments, buildSegment(sampled[i].point, sampled[i+1].point, flows[i]))
	}

	s.logger.Info("traffic segmentation complete", "segments", len(segments))
	return segments
}

// buildSegment classifies one segment from its flow snapshot.
func buildSegment(start, end types.Coordinate, flow *tomtom.TrafficFlow) TrafficSegment {
	seg := TrafficSegment{Start: start, End: end}

	if flow == nil {
		seg.SpeedRatio = 1.0
		seg.Color = "#00FF00"
		seg.Status = "unknown"
		return seg
	}

	if flow.FreeFlowSpeed > 0 {
		seg.SpeedRatio = min(flow.CurrentSpeed/flow.FreeFlowSpeed, 1.0)
	} else {
		seg.SpeedRatio = 0.5
	}

	switch {
	case seg.SpeedRatio >= 0.7:
		seg.Color = "#00FF00"
		seg.Status = "light"
	case seg.SpeedRatio >= 0.4:
		seg.Color = "#FFFF00"
		seg.Status = "moderate"
	default:
		seg.Color = "#FF0000"
		seg.Status = "heavy"
	}

	if flow.RoadClosure {
		seg.Color = "#FF0000"
		seg.Status = "closed"
		seg.SpeedRatio = 0.0
	}
	return seg
}
