package tomtom

import (
	"encoding/json"

	"smartroute/internal/types"
)

// rawPoint accepts the coordinate shapes seen across TomTom responses and
// normalizes them to the canonical Coordinate at the adapter boundary:
//
//	{"latitude": X, "longitude": Y}
//	{"lat": X, "lon": Y}
//	[lon, lat]
//	{"point": {"latitude": X, "longitude": Y}}
//
// An unrecognized or out-of-range point unmarshals to ok=false and is
// dropped by the caller.
type rawPoint struct {
	coord types.Coordinate
	ok    bool
}

func (p *rawPoint) UnmarshalJSON(data []byte) error {
	// Array form: [lon, lat]
	var arr []float64
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) >= 2 {
			p.set(arr[1], arr[0])
		}
		return nil
	}

	var obj struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Lat       *float64 `json:"lat"`
		Lon       *float64 `json:"lon"`
		Point     *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
			Lat       *float64 `json:"lat"`
			Lon       *float64 `json:"lon"`
		} `json:"point"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Not one of the recognized shapes; drop the point, don't fail
		// the whole geometry.
		return nil
	}

	switch {
	case obj.Latitude != nil && obj.Longitude != nil:
		p.set(*obj.Latitude, *obj.Longitude)
	case obj.Lat != nil && obj.Lon != nil:
		p.set(*obj.Lat, *obj.Lon)
	case obj.Point != nil && obj.Point.Latitude != nil && obj.Point.Longitude != nil:
		p.set(*obj.Point.Latitude, *obj.Point.Longitude)
	case obj.Point != nil && obj.Point.Lat != nil && obj.Point.Lon != nil:
		p.set(*obj.Point.Lat, *obj.Point.Lon)
	}
	return nil
}

func (p *rawPoint) set(lat, lon float64) {
	c := types.NewCoordinate(lat, lon)
	if c.Validate() != nil {
		return
	}
	p.coord = c
	p.ok = true
}

// normalizeGeometry converts raw points to coordinates, dropping anything
// that failed to parse or validate.
func normalizeGeometry(points []rawPoint) []types.Coordinate {
	out := make([]types.Coordinate, 0, len(points))
	for _, p := range points {
		if p.ok {
			out = append(out, p.coord)
		}
	}
	return out
}
