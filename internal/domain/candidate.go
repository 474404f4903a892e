package domain

import "time"

// CandidateSlot is a concrete proposed appointment inside a free window,
// priced with its travel legs. EfficiencyScore is the internal score:
// round-trip travel minutes adjusted by a time-of-day factor, lower is
// better. Candidates are produced by the generator, consumed immediately by
// ranking and never persisted.
type CandidateSlot struct {
	StartTime         time.Time
	EndTime           time.Time
	LeadLocation      Location
	TravelToMinutes   int
	TravelFromMinutes int
	EfficiencyScore   float64
	PreviousLocation  *Location
	NextLocation      *Location
}

// DurationMinutes is the proposed appointment length in whole minutes.
func (s CandidateSlot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// TotalTravelMinutes is the combined travel into and out of the slot.
func (s CandidateSlot) TotalTravelMinutes() int {
	return s.TravelToMinutes + s.TravelFromMinutes
}

// AvailableSlot is the external-facing slot shape. EfficiencyScore here is
// normalized to 0-100 with higher meaning better, the inverse orientation of
// the internal score.
type AvailableSlot struct {
	StartTime       time.Time
	EndTime         time.Time
	EfficiencyScore float64
}
