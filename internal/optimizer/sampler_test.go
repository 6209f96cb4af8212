package optimizer

import (
	"testing"

	"smartroute/internal/types"
)

// lineGeometry builds a straight north-south geometry with the given spacing
// between consecutive points. One degree of latitude is ~111.2 km.
func lineGeometry(points int, spacingKm float64) []types.Coordinate {
	const degPerKm = 1.0 / 111.195
	geometry := make([]types.Coordinate, 0, points)
	for i := 0; i < points; i++ {
		geometry = append(geometry, types.Coordinate{
			Latitude:  -23.5 + float64(i)*spacingKm*degPerKm,
			Longitude: -46.6,
		})
	}
	return geometry
}

func TestAdaptiveSampler_IntervalFor(t *testing.T) {
	s := NewAdaptiveSampler()

	tests := []struct {
		name    string
		routeKm float64
		want    float64
	}{
		{name: "urban route", routeKm: 5, want: 0.8},
		{name: "just under urban threshold", routeKm: 14.9, want: 0.8},
		{name: "at urban threshold", routeKm: 15, want: 3.0},
		{name: "medium route", routeKm: 50, want: 3.0},
		{name: "at medium threshold", routeKm: 100, want: 15.0},
		{name: "long route", routeKm: 500, want: 15.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.intervalFor(tt.routeKm); got != tt.want {
				t.Errorf("intervalFor(%v) = %v, want %v", tt.routeKm, got, tt.want)
			}
		})
	}
}

func TestAdaptiveSampler_Sample(t *testing.T) {
	s := NewAdaptiveSampler()

	tests := []struct {
		name     string
		geometry []types.Coordinate
		routeKm  float64
		validate func(t *testing.T, sampled []types.Coordinate)
	}{
		{
			name:     "empty geometry unchanged",
			geometry: nil,
			routeKm:  10,
			validate: func(t *testing.T, sampled []types.Coordinate) {
				if len(sampled) != 0 {
					t.Errorf("expected empty result, got %d points", len(sampled))
				}
			},
		},
		{
			name:     "single point unchanged",
			geometry: lineGeometry(1, 0),
			routeKm:  10,
			validate: func(t *testing.T, sampled []types.Coordinate) {
				if len(sampled) != 1 {
					t.Errorf("expected 1 point, got %d", len(sampled))
				}
			},
		},
		{
			name:     "route shorter than the interval keeps only the endpoints",
			geometry: lineGeometry(6, 0.1), // 500 m, below the 0.8 km urban interval
			routeKm:  0.5,
			validate: func(t *testing.T, sampled []types.Coordinate) {
				if len(sampled) != 2 {
					t.Fatalf("expected exactly 2 samples, got %d", len(sampled))
				}
				geometry := lineGeometry(6, 0.1)
				if sampled[0] != geometry[0] || sampled[1] != geometry[5] {
					t.Errorf("samples = %v, want the route endpoints", sampled)
				}
			},
		},
		{
			name:     "urban route keeps dense samples",
			geometry: lineGeometry(51, 0.1), // 5 km total
			routeKm:  5,
			validate: func(t *testing.T, sampled []types.Coordinate) {
				// 5 km at 0.8 km interval is 6 interior crossings plus the
				// endpoints' guarantees.
				if len(sampled) < 5 || len(sampled) > 8 {
					t.Errorf("expected 5-8 samples for 5km urban route, got %d", len(sampled))
				}
			},
		},
		{
			name:     "cap applies to long dense geometry",
			geometry: lineGeometry(2001, 0.25), // 500 km
			routeKm:  500,
			validate: func(t *testing.T, sampled []types.Coordinate) {
				if len(sampled) > maxSamples {
					t.Errorf("expected at most %d samples, got %d", maxSamples, len(sampled))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampled := s.Sample(tt.geometry, tt.routeKm)
			tt.validate(t, sampled)
		})
	}
}

func TestAdaptiveSampler_KeepsEndpoints(t *testing.T) {
	s := NewAdaptiveSampler()
	geometry := lineGeometry(401, 0.5) // 200 km

	sampled := s.Sample(geometry, 200)

	if sampled[0] != geometry[0] {
		t.Errorf("first sample = %v, want origin %v", sampled[0], geometry[0])
	}
	if sampled[len(sampled)-1] != geometry[len(geometry)-1] {
		t.Errorf("last sample = %v, want destination %v", sampled[len(sampled)-1], geometry[len(geometry)-1])
	}
}

func TestResample_UniformIndices(t *testing.T) {
	points := lineGeometry(100, 1)
	out := resample(points, maxSamples)

	if len(out) != maxSamples {
		t.Fatalf("expected %d points, got %d", maxSamples, len(out))
	}
	if out[0] != points[0] {
		t.Errorf("resample dropped the first point")
	}
	if out[len(out)-1] != points[len(points)-1] {
		t.Errorf("resample dropped the last point")
	}
}
