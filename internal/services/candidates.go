package services

import (
	"context"
	"fmt"
	"time"

	"appointment-slot-service/internal/domain"
	"appointment-slot-service/internal/ports"
)

// GenerateCandidates expands free windows into concrete, scored slot
// proposals at a fixed start-time granularity.
//
// Each window is priced independently with one travel lookup into it and one
// out of it; windows too short for the appointment plus both buffers
// contribute nothing. Candidates from all windows are concatenated in
// generation order without deduplication.
func GenerateCandidates(
	ctx context.Context,
	windows []domain.TimeWindow,
	lead domain.Location,
	durationMinutes int,
	intervalMinutes int,
	bufferMinutes int,
	travel ports.TravelEstimator,
) ([]domain.CandidateSlot, error) {
	candidates := []domain.CandidateSlot{}

	for _, window := range windows {
		if !window.CanFit(durationMinutes, bufferMinutes) {
			continue
		}

		travelTo, err := travel.TravelTimeMinutes(ctx, window.StartLocation, lead)
		if err != nil {
			return nil, fmt.Errorf("generate candidates: travel time into window: %w", err)
		}

		travelFrom, err := travel.TravelTimeMinutes(ctx, lead, window.EndLocation)
		if err != nil {
			return nil, fmt.Errorf("generate candidates: travel time out of window: %w", err)
		}

		earliestStart := roundToNearest(
			window.StartTime.Add(time.Duration(travelTo+bufferMinutes)*time.Minute),
			intervalMinutes,
		)

		latestEnd := window.EndTime.Add(-time.Duration(travelFrom+bufferMinutes) * time.Minute)
		latestStart := roundToNearest(
			latestEnd.Add(-time.Duration(durationMinutes)*time.Minute),
			intervalMinutes,
		)

		if earliestStart.After(latestStart) {
			continue
		}

		from := window.StartLocation
		to := window.EndLocation

		for start := earliestStart; !start.After(latestStart); start = start.Add(time.Duration(intervalMinutes) * time.Minute) {
			end := start.Add(time.Duration(durationMinutes) * time.Minute)

			// Rounding latestStart up can push the final slot past the
			// hard boundary.
			if end.After(latestEnd) {
				break
			}

			candidates = append(candidates, domain.CandidateSlot{
				StartTime:         start,
				EndTime:           end,
				LeadLocation:      lead,
				TravelToMinutes:   travelTo,
				TravelFromMinutes: travelFrom,
				EfficiencyScore:   scoreSlot(travelTo+travelFrom, start),
				PreviousLocation:  &from,
				NextLocation:      &to,
			})
		}
	}

	return candidates, nil
}

// scoreSlot prices a candidate by its round-trip travel minutes, adjusted by
// the start hour: mid-day (10:00-14:59) starts are preferred, starts before
// 09:00 or after 16:59 penalized. Lower is better.
func scoreSlot(totalTravelMinutes int, start time.Time) float64 {
	factor := 1.0
	switch hour := start.Hour(); {
	case hour >= 10 && hour <= 14:
		factor = 0.9
	case hour < 9 || hour > 16:
		factor = 1.1
	}
	return float64(totalTravelMinutes) * factor
}

// roundToNearest snaps t to the nearest interval boundary, counting minutes
// since midnight with half-up semantics. Seconds are dropped.
func roundToNearest(t time.Time, intervalMinutes int) time.Time {
	minutes := t.Hour()*60 + t.Minute()
	rounded := (minutes + intervalMinutes/2) / intervalMinutes * intervalMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), rounded/60, rounded%60, 0, 0, t.Location())
}
