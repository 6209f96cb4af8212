package geo

import (
	"github.com/golang/geo/s2"

	"smartroute/internal/types"
)

const (
	// EarthRadiusMeters is Earth's mean radius in meters
	EarthRadiusMeters = 6371000.0
	// EarthRadiusKm is Earth's mean radius in kilometers
	EarthRadiusKm = 6371.0
)

// DistanceMeters calculates the great-circle distance between two points in
// meters.
func DistanceMeters(a, b types.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm calculates the great-circle distance between two points in
// kilometers.
func DistanceKm(a, b types.Coordinate) float64 {
	return DistanceMeters(a, b) / 1000
}

// Midpoint returns the great-circle midpoint between two points.
func Midpoint(a, b types.Coordinate) types.Coordinate {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)

	mid := s2.Interpolate(0.5, s2.PointFromLatLng(p1), s2.PointFromLatLng(p2))
	midLatLng := s2.LatLngFromPoint(mid)

	return types.NewCoordinate(midLatLng.Lat.Degrees(), midLatLng.Lng.Degrees())
}
