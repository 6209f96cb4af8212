package types

import "errors"

var (
	// ErrInvalidLatitude is returned when a latitude is outside [-90, 90]
	ErrInvalidLatitude = errors.New("latitude must be between -90 and 90")
	// ErrInvalidLongitude is returned when a longitude is outside [-180, 180]
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// NewCoordinate builds a coordinate without validating it. Use Validate
// before handing the value to a provider.
func NewCoordinate(latitude, longitude float64) Coordinate {
	return Coordinate{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// Validate checks that both components are inside their valid ranges.
// Out-of-range values are rejected, never clamped.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}
