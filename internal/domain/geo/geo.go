package geo

import (
	"errors"
	"math"
)

var ErrInvalidCoordinate = errors.New("coordinate out of range")

const earthRadiusMeters = 6371000.0

// Point is a validated WGS84 coordinate pair in decimal degrees.
type Point struct {
	lat float64
	lon float64
}

// NewPoint rejects out-of-range coordinates instead of clamping; a caller
// sending lat 91 has a bug, not a point near the pole.
func NewPoint(lat, lon float64) (Point, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return Point{}, ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 {
		return Point{}, ErrInvalidCoordinate
	}
	if lon < -180 || lon > 180 {
		return Point{}, ErrInvalidCoordinate
	}
	return Point{lat: lat, lon: lon}, nil
}

func (p Point) Lat() float64 { return p.lat }
func (p Point) Lon() float64 { return p.lon }

// DistanceMeters returns the great-circle (haversine) distance between two
// points on a spherical Earth approximation.
func DistanceMeters(a, b Point) float64 {
	dLat := toRad(b.lat - a.lat)
	dLon := toRad(b.lon - a.lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.lat))*math.Cos(toRad(b.lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

func WithinRadius(p, center Point, radiusMeters float64) bool {
	return DistanceMeters(p, center) <= radiusMeters
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
