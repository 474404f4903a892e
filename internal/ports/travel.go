package ports

import (
	"context"

	"appointment-slot-service/internal/domain"
)

// Contract for estimating driving time between two points.
type TravelEstimator interface {
	// Return estimated driving minutes from origin to destination, always
	// >= 0. Providers degrade to straight-line estimation on backend
	// failures instead of surfacing them.
	TravelTimeMinutes(ctx context.Context, origin, destination domain.Location) (int, error)
}

// Contract for resolving a street address to coordinates. A nil location
// with a nil error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Location, error)
}
