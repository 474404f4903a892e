package travel

import (
	"context"

	"appointment-slot-service/internal/adapters/cache"
	"appointment-slot-service/internal/domain"
)

// MockTravelEstimator returns canned minutes per coordinate pair, falling
// back to a default for unlisted pairs. Deterministic stand-in for tests.
type MockTravelEstimator struct {
	Default int
	pairs   map[string]int
	Calls   int
}

func NewMockTravelEstimator(defaultMinutes int) *MockTravelEstimator {
	return &MockTravelEstimator{
		Default: defaultMinutes,
		pairs:   make(map[string]int),
	}
}

// SetLeg pins the minutes for one directed pair.
func (m *MockTravelEstimator) SetLeg(origin, destination domain.Location, minutes int) {
	m.pairs[cache.PairKey(origin, destination)] = minutes
}

func (m *MockTravelEstimator) TravelTimeMinutes(ctx context.Context, origin, destination domain.Location) (int, error) {
	m.Calls++
	if minutes, ok := m.pairs[cache.PairKey(origin, destination)]; ok {
		return minutes, nil
	}
	return m.Default, nil
}
