package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"appointment-slot-service/internal/adapters/travel"
	"appointment-slot-service/internal/domain"
	"appointment-slot-service/internal/ports"
)

type stubGeocoder struct {
	loc *domain.Location
	err error
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	return s.loc, s.err
}

type stubCalendar struct {
	appointments []domain.Appointment
	err          error
	listCalls    int
}

func (s *stubCalendar) ListAppointments(ctx context.Context, start, end time.Time) ([]domain.Appointment, error) {
	s.listCalls++
	return s.appointments, s.err
}

func (s *stubCalendar) CreateAppointment(ctx context.Context, req ports.AppointmentRequest) (ports.AppointmentResult, error) {
	return ports.AppointmentResult{}, errors.New("not implemented")
}

func plannerForTest() PlannerConfig {
	hours, _ := domain.ParseBusinessHours("09:00", "18:00")
	return PlannerConfig{
		BusinessHours:          hours,
		BufferMinutes:          15,
		DefaultDurationMinutes: 60,
		LookaheadDays:          7,
		SlotIntervalMinutes:    15,
		MaxResults:             10,
		HomeBase:               testHome,
		Timezone:               time.UTC,
	}
}

func TestFindBestSlotsRanksByEfficiency(t *testing.T) {
	target := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	geo := &stubGeocoder{loc: &testLead}
	cal := &stubCalendar{}
	mock := travel.NewMockTravelEstimator(15)

	slots, err := FindBestSlots(context.Background(), SlotQuery{
		LeadAddress: "123 Main St",
		TargetDate:  &target,
	}, plannerForTest(), geo, cal, mock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 10 {
		t.Fatalf("got %d slots, want 10 (capped at MaxResults)", len(slots))
	}

	// Mid-day candidates score best; with uniform travel the top slot is the
	// earliest mid-day start.
	first := slots[0]
	if first.StartTime.Hour() != 10 || first.StartTime.Minute() != 0 {
		t.Fatalf("best slot starts %v, want 10:00", first.StartTime)
	}
	if !closeTo(first.EfficiencyScore, 86.5) {
		t.Fatalf("best slot score = %v, want 86.5", first.EfficiencyScore)
	}

	for i := 0; i < len(slots)-1; i++ {
		if slots[i].EfficiencyScore < slots[i+1].EfficiencyScore {
			t.Fatalf("slot %d scores below slot %d", i, i+1)
		}
	}
	for _, s := range slots {
		if s.EfficiencyScore < 0 || s.EfficiencyScore > 100 {
			t.Fatalf("score %v outside [0, 100]", s.EfficiencyScore)
		}
	}
}

func TestFindBestSlotsHonorsQueryOverrides(t *testing.T) {
	target := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	geo := &stubGeocoder{loc: &testLead}
	cal := &stubCalendar{}
	mock := travel.NewMockTravelEstimator(15)

	slots, err := FindBestSlots(context.Background(), SlotQuery{
		LeadAddress:     "123 Main St",
		DurationMinutes: 120,
		TargetDate:      &target,
		MaxResults:      3,
	}, plannerForTest(), geo, cal, mock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	for _, s := range slots {
		if got := int(s.EndTime.Sub(s.StartTime) / time.Minute); got != 120 {
			t.Fatalf("slot duration = %d, want 120", got)
		}
	}
}

func TestFindBestSlotsUnresolvableAddress(t *testing.T) {
	geo := &stubGeocoder{loc: nil}
	cal := &stubCalendar{}
	mock := travel.NewMockTravelEstimator(15)

	slots, err := FindBestSlots(context.Background(), SlotQuery{LeadAddress: "nowhere"}, plannerForTest(), geo, cal, mock)
	if err != nil {
		t.Fatalf("unresolvable address should not error, got %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", slots)
	}
	if cal.listCalls != 0 {
		t.Fatal("calendar should not be queried for an unresolvable address")
	}
}

func TestFindBestSlotsGeocoderError(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("maps down")}
	cal := &stubCalendar{}
	mock := travel.NewMockTravelEstimator(15)

	if _, err := FindBestSlots(context.Background(), SlotQuery{LeadAddress: "123 Main St"}, plannerForTest(), geo, cal, mock); err == nil {
		t.Fatal("expected error from failing geocoder")
	}
}

func TestFindBestSlotsCalendarUnavailable(t *testing.T) {
	geo := &stubGeocoder{loc: &testLead}
	cal := &stubCalendar{err: errors.New("upstream 500")}
	mock := travel.NewMockTravelEstimator(15)

	_, err := FindBestSlots(context.Background(), SlotQuery{LeadAddress: "123 Main St"}, plannerForTest(), geo, cal, mock)
	if err == nil {
		t.Fatal("expected error from failing calendar")
	}
	if !errors.Is(err, ErrCalendarUnavailable) {
		t.Fatalf("error %v should wrap ErrCalendarUnavailable", err)
	}
}

func TestFindBestSlotsSkipsBookedTime(t *testing.T) {
	target := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	geo := &stubGeocoder{loc: &testLead}
	cal := &stubCalendar{appointments: []domain.Appointment{
		appointmentAt(day, 12, 0, 60, testSite),
	}}
	mock := travel.NewMockTravelEstimator(15)

	slots, err := FindBestSlots(context.Background(), SlotQuery{
		LeadAddress: "123 Main St",
		TargetDate:  &target,
		MaxResults:  100,
	}, plannerForTest(), geo, cal, mock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots around the booked hour")
	}

	booked, err := domain.NewTimeWindow(day.Add(12*time.Hour), day.Add(13*time.Hour), testSite, testSite)
	if err != nil {
		t.Fatalf("build booked window: %v", err)
	}
	for _, s := range slots {
		w, err := domain.NewTimeWindow(s.StartTime, s.EndTime, testLead, testLead)
		if err != nil {
			t.Fatalf("slot %v-%v invalid: %v", s.StartTime, s.EndTime, err)
		}
		if w.Overlaps(booked) {
			t.Fatalf("slot %v-%v overlaps the booked appointment", s.StartTime, s.EndTime)
		}
	}
}

func TestNormalizeScore(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 100},
		{27, 86.5},
		{100, 50},
		{200, 0},
		{250, 0},
	}
	for _, tt := range tests {
		if got := normalizeScore(tt.in); !closeTo(got, tt.want) {
			t.Fatalf("normalizeScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
