package geo

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/prooook2/smart-tourism/models"
)

const EarthRadiusKm = 6371.0

// Speed profile in km per minute.
const (
	WalkingKmPerMin = 4.5 / 60
	DrivingKmPerMin = 25.0 / 60
)

// SpeedKmPerMin maps a travel mode to its speed. Unknown modes fall back to
// walking.
func SpeedKmPerMin(mode string) float64 {
	switch mode {
	case "driving":
		return DrivingKmPerMin
	default:
		return WalkingKmPerMin
	}
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. A missing point means unreachable: the result is +Inf, never
// an error.
func HaversineKm(a, b *models.Coords) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// TravelMinutes converts a distance to whole minutes of travel. Rounding is
// always up so that any nonzero hop costs at least one minute.
func TravelMinutes(distanceKm, speedKmPerMin float64) int {
	if math.IsInf(distanceKm, 1) {
		return math.MaxInt32
	}
	return int(math.Ceil(distanceKm / speedKmPerMin))
}
