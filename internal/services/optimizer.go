package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"appointment-slot-service/internal/domain"
	"appointment-slot-service/internal/ports"
)

// ErrCalendarUnavailable marks a failed appointment fetch, as opposed to a
// calendar that is genuinely empty. Slots are never proposed against an
// unknowable calendar.
var ErrCalendarUnavailable = errors.New("calendar unavailable")

// PlannerConfig is the process-wide, read-only tuning for slot optimization.
// It is fixed for the process lifetime and safe to share across concurrent
// requests.
type PlannerConfig struct {
	BusinessHours          domain.BusinessHours
	BufferMinutes          int
	DefaultDurationMinutes int
	LookaheadDays          int
	SlotIntervalMinutes    int
	MaxResults             int
	HomeBase               domain.Location
	Timezone               *time.Location
}

func (c PlannerConfig) timezone() *time.Location {
	if c.Timezone != nil {
		return c.Timezone
	}
	return time.Local
}

// SlotQuery is one lead's request for ranked appointment slots. Zero-valued
// fields fall back to the planner defaults.
type SlotQuery struct {
	LeadAddress     string
	DurationMinutes int
	TargetDate      *time.Time
	MaxResults      int
}

// FindBestSlots ranks appointment slots for a lead by travel efficiency.
//
// The computation is stateless per call: geocode the lead, fetch the current
// appointment snapshot, derive free windows, expand and score candidates,
// then sort ascending by internal score (stable, so ties keep generation
// order) and truncate. An unresolvable lead address yields an empty result,
// not an error.
func FindBestSlots(
	ctx context.Context,
	query SlotQuery,
	cfg PlannerConfig,
	geo ports.Geocoder,
	cal ports.CalendarSource,
	travel ports.TravelEstimator,
) ([]domain.AvailableSlot, error) {
	lead, err := geo.Geocode(ctx, query.LeadAddress)
	if err != nil {
		return nil, fmt.Errorf("find best slots: geocode lead address: %w", err)
	}
	if lead == nil {
		log.Printf("find best slots: unresolvable lead address %q", query.LeadAddress)
		return []domain.AvailableSlot{}, nil
	}

	duration := query.DurationMinutes
	if duration <= 0 {
		duration = cfg.DefaultDurationMinutes
	}

	maxResults := query.MaxResults
	if maxResults <= 0 {
		maxResults = cfg.MaxResults
	}

	startDate, days := queryRange(query.TargetDate, cfg)

	appointments, err := cal.ListAppointments(ctx, startDate, startDate.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("find best slots: list appointments: %w: %v", ErrCalendarUnavailable, err)
	}

	windows := FreeTimeWindows(appointments, startDate, days, cfg.BusinessHours, cfg.HomeBase)

	candidates, err := GenerateCandidates(ctx, windows, *lead, duration, cfg.SlotIntervalMinutes, cfg.BufferMinutes, travel)
	if err != nil {
		return nil, fmt.Errorf("find best slots: %w", err)
	}

	slices.SortStableFunc(candidates, func(a, b domain.CandidateSlot) int {
		if a.EfficiencyScore < b.EfficiencyScore {
			return -1
		}
		if a.EfficiencyScore > b.EfficiencyScore {
			return 1
		}
		return 0
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	slots := make([]domain.AvailableSlot, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, domain.AvailableSlot{
			StartTime:       c.StartTime,
			EndTime:         c.EndTime,
			EfficiencyScore: normalizeScore(c.EfficiencyScore),
		})
	}

	return slots, nil
}

// queryRange resolves the date span to optimize over: the target date alone
// when given, otherwise the configured look-ahead starting tomorrow.
func queryRange(target *time.Time, cfg PlannerConfig) (time.Time, int) {
	loc := cfg.timezone()

	if target != nil {
		t := target.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), 1
	}

	now := time.Now().In(loc)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return tomorrow, cfg.LookaheadDays
}

// normalizeScore maps the internal lower-is-better score onto the external
// 0-100 higher-is-better scale. The linear mapping assumes round trips
// rarely exceed 200 travel minutes; anything above clamps to 0.
func normalizeScore(score float64) float64 {
	n := 100 - score/2
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
