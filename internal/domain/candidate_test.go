package domain

import (
	"testing"
	"time"
)

func TestCandidateSlotDerivedValues(t *testing.T) {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	slot := CandidateSlot{
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		TravelToMinutes:   12,
		TravelFromMinutes: 18,
	}

	if got := slot.DurationMinutes(); got != 60 {
		t.Fatalf("duration = %d, want 60", got)
	}
	if got := slot.TotalTravelMinutes(); got != 30 {
		t.Fatalf("total travel = %d, want 30", got)
	}
}

func TestLocationSamePlaceIgnoresAddress(t *testing.T) {
	a := Location{Lat: 40.7128, Lng: -74.0060, Address: "123 Main St"}
	b := Location{Lat: 40.7128, Lng: -74.0060, Address: "123 Main Street"}
	c := Location{Lat: 40.7128, Lng: -74.0061, Address: "123 Main St"}

	if !a.SamePlace(b) {
		t.Fatal("locations with equal coordinates should be the same place")
	}
	if a.SamePlace(c) {
		t.Fatal("locations with different coordinates should differ")
	}
}
