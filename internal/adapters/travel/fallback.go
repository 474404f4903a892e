package travel

import (
	"math"

	"appointment-slot-service/internal/domain"
)

const (
	earthRadiusKm = 6371.0

	// Assumed average driving speed for straight-line estimation.
	fallbackSpeedKmh = 50.0
)

// haversineKm returns the great-circle distance between two points in
// kilometers.
func haversineKm(origin, destination domain.Location) float64 {
	lat1 := origin.Lat * math.Pi / 180
	lat2 := destination.Lat * math.Pi / 180
	dLat := (destination.Lat - origin.Lat) * math.Pi / 180
	dLng := (destination.Lng - origin.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// estimateTravelMinutes prices a leg by straight-line distance at the
// assumed average speed. Used whenever the routes backend is unavailable, so
// the optimizer can always degrade to best-effort results.
func estimateTravelMinutes(origin, destination domain.Location) int {
	hours := haversineKm(origin, destination) / fallbackSpeedKmh
	return int(math.Round(hours * 60))
}
