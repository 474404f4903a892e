package services

import (
	"slices"
	"time"

	"appointment-slot-service/internal/domain"
)

// FreeTimeWindows converts a range of business days and the appointments
// booked on them into the maximal free windows between obligations.
//
// Each day in [startDate, startDate+days) is processed independently: a day
// with no appointments yields one window spanning the full business hours,
// anchored at home base on both ends; otherwise windows are emitted before
// the first appointment, in every gap between adjacent appointments, and
// after the last one, anchored at the locations on either side.
//
// Back-to-back or overlapping appointments simply produce no gap window;
// malformed appointment intervals are the calendar's responsibility and are
// not re-validated here. Windows come out in chronological order.
func FreeTimeWindows(
	appointments []domain.Appointment,
	startDate time.Time,
	days int,
	hours domain.BusinessHours,
	homeBase domain.Location,
) []domain.TimeWindow {
	sorted := make([]domain.Appointment, len(appointments))
	copy(sorted, appointments)
	slices.SortFunc(sorted, func(a, b domain.Appointment) int {
		return a.StartTime.Compare(b.StartTime)
	})

	windows := make([]domain.TimeWindow, 0, days)

	for i := 0; i < days; i++ {
		day := startDate.AddDate(0, 0, i)
		dayStart := hours.Start.On(day)
		dayEnd := hours.End.On(day)

		dayAppts := appointmentsOn(sorted, day)

		if len(dayAppts) == 0 {
			if w, err := domain.NewTimeWindow(dayStart, dayEnd, homeBase, homeBase); err == nil {
				windows = append(windows, w)
			}
			continue
		}

		first := dayAppts[0]
		if w, err := domain.NewTimeWindow(dayStart, first.StartTime, homeBase, first.Location); err == nil {
			windows = append(windows, w)
		}

		for j := 0; j < len(dayAppts)-1; j++ {
			current, next := dayAppts[j], dayAppts[j+1]
			if w, err := domain.NewTimeWindow(current.EndTime, next.StartTime, current.Location, next.Location); err == nil {
				windows = append(windows, w)
			}
		}

		last := dayAppts[len(dayAppts)-1]
		if w, err := domain.NewTimeWindow(last.EndTime, dayEnd, last.Location, homeBase); err == nil {
			windows = append(windows, w)
		}
	}

	return windows
}

// appointmentsOn filters to appointments whose start falls on day's calendar
// date, evaluated in day's time zone. Input must already be sorted by start.
func appointmentsOn(sorted []domain.Appointment, day time.Time) []domain.Appointment {
	y, m, d := day.Date()

	out := []domain.Appointment{}
	for _, a := range sorted {
		ay, am, ad := a.StartTime.In(day.Location()).Date()
		if ay == y && am == m && ad == d {
			out = append(out, a)
		}
	}
	return out
}
