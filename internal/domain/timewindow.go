package domain

import (
	"fmt"
	"time"
)

// TimeWindow is a contiguous stretch of free business time between two
// obligations. StartLocation is where the technician arrives from,
// EndLocation is where they must travel to next; both are used to price
// travel into and out of the window.
//
// Windows are value objects: built fresh per optimization request, never
// mutated, discarded after candidate generation.
type TimeWindow struct {
	StartTime     time.Time
	EndTime       time.Time
	StartLocation Location
	EndLocation   Location
}

// NewTimeWindow rejects empty or inverted intervals.
func NewTimeWindow(start, end time.Time, from, to Location) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, fmt.Errorf(
			"new time window: end %s must be after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339),
		)
	}

	return TimeWindow{
		StartTime:     start,
		EndTime:       end,
		StartLocation: from,
		EndLocation:   to,
	}, nil
}

// DurationMinutes is the window length in whole minutes.
func (w TimeWindow) DurationMinutes() int {
	return int(w.EndTime.Sub(w.StartTime) / time.Minute)
}

// CanFit reports whether an appointment of the given duration, padded with
// the buffer on both sides, fits inside the window.
func (w TimeWindow) CanFit(durationMinutes, bufferMinutes int) bool {
	return w.DurationMinutes() >= durationMinutes+2*bufferMinutes
}

// Contains reports whether t falls inside the half-open interval [start, end).
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.StartTime) && t.Before(w.EndTime)
}

// Overlaps reports whether two windows share any time. A window ending
// exactly where the next one starts does not overlap it.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if w.Contains(other.StartTime) {
		return true
	}
	if other.EndTime.After(w.StartTime) && !other.EndTime.After(w.EndTime) {
		return true
	}
	return !other.StartTime.After(w.StartTime) && !other.EndTime.Before(w.EndTime)
}
