package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Earth's mean radius.
const (
	EarthRadiusKm     = 6371.0
	EarthRadiusMeters = 6371000.0
)

// DegreesToRadians converts decimal degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts radians to decimal degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// HaversineDistanceKm calculates the great-circle distance between two
// points in kilometers. Symmetric in its arguments and zero for
// identical points. Inputs are assumed to be valid coordinates.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// BearingDegrees calculates the initial bearing (forward azimuth) from
// point 1 to point 2, normalized to [0, 360) where 0 is North and 90
// is East.
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := DegreesToRadians(lat1)
	lat2Rad := DegreesToRadians(lat2)
	lonDiff := DegreesToRadians(lon2 - lon1)

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	return math.Mod(RadiansToDegrees(bearing)+360, 360)
}
