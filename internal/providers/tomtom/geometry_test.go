package tomtom

import (
	"encoding/json"
	"testing"
)

func TestRawPoint_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		wantLat float64
		wantLon float64
	}{
		{
			name:    "latitude/longitude keys",
			input:   `{"latitude": -23.55, "longitude": -46.63}`,
			wantOK:  true,
			wantLat: -23.55,
			wantLon: -46.63,
		},
		{
			name:    "lat/lon keys",
			input:   `{"lat": -23.55, "lon": -46.63}`,
			wantOK:  true,
			wantLat: -23.55,
			wantLon: -46.63,
		},
		{
			name:    "geojson array is lon,lat",
			input:   `[-46.63, -23.55]`,
			wantOK:  true,
			wantLat: -23.55,
			wantLon: -46.63,
		},
		{
			name:    "nested point",
			input:   `{"point": {"latitude": -23.55, "longitude": -46.63}}`,
			wantOK:  true,
			wantLat: -23.55,
			wantLon: -46.63,
		},
		{
			name:    "nested point with short keys",
			input:   `{"point": {"lat": -23.55, "lon": -46.63}}`,
			wantOK:  true,
			wantLat: -23.55,
			wantLon: -46.63,
		},
		{
			name:   "out of range latitude dropped",
			input:  `{"lat": 91.0, "lon": 0.0}`,
			wantOK: false,
		},
		{
			name:   "unrecognized shape dropped",
			input:  `{"x": 1, "y": 2}`,
			wantOK: false,
		},
		{
			name:   "short array dropped",
			input:  `[-46.63]`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p rawPoint
			if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
				t.Fatalf("Unmarshal(%q) unexpected error: %v", tt.input, err)
			}
			if p.ok != tt.wantOK {
				t.Fatalf("Unmarshal(%q) ok = %v, want %v", tt.input, p.ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if p.coord.Latitude != tt.wantLat || p.coord.Longitude != tt.wantLon {
				t.Errorf("Unmarshal(%q) = (%f, %f), want (%f, %f)",
					tt.input, p.coord.Latitude, p.coord.Longitude, tt.wantLat, tt.wantLon)
			}
		})
	}
}

func TestNormalizeGeometry_DropsInvalidPoints(t *testing.T) {
	input := `[
		{"latitude": -23.55, "longitude": -46.63},
		{"x": 1},
		{"lat": -23.56, "lon": -46.64}
	]`

	var points []rawPoint
	if err := json.Unmarshal([]byte(input), &points); err != nil {
		t.Fatalf("Unmarshal unexpected error: %v", err)
	}

	coords := normalizeGeometry(points)
	if len(coords) != 2 {
		t.Fatalf("normalizeGeometry() returned %d points, want 2", len(coords))
	}
	if coords[0].Latitude != -23.55 || coords[1].Latitude != -23.56 {
		t.Errorf("normalizeGeometry() kept wrong points: %+v", coords)
	}
}
