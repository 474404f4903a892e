package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Token:      "token",
		CalendarID: "cal_1",
		LocationID: "loc_1",
	}
}

func TestNewHighLevelCalendarValidation(t *testing.T) {
	if _, err := NewHighLevelCalendar(Config{CalendarID: "c", LocationID: "l"}, nil); err == nil {
		t.Fatal("expected error for missing token")
	}
	if _, err := NewHighLevelCalendar(Config{Token: "t"}, nil); err == nil {
		t.Fatal("expected error for missing calendar and location ids")
	}

	cal, err := NewHighLevelCalendar(Config{Token: "t", CalendarID: "c", LocationID: "l"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal.cfg.BaseURL == "" || cal.cfg.APIVersion == "" {
		t.Fatal("base url and api version should default")
	}
}

func TestListAppointmentsFiltersAndMaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Version"); got == "" {
			t.Error("missing Version header")
		}
		if got := r.URL.Query().Get("calendarId"); got != "cal_1" {
			t.Errorf("calendarId = %q", got)
		}
		w.Write([]byte(`{"events":[
			{"id":"e1","title":"Consult","type":"appointment",
			 "startTime":"2026-03-16T10:00:00Z","endTime":"2026-03-16T11:00:00Z",
			 "durationInMinutes":60,"contactId":"ct1",
			 "location":{"address":"123 Main St","latitude":40.7,"longitude":-74.0}},
			{"id":"e2","title":"Lunch","type":"blocked",
			 "startTime":"2026-03-16T12:00:00Z","endTime":"2026-03-16T13:00:00Z"},
			{"id":"e3","title":"Follow-up","type":"appointment",
			 "startTime":"2026-03-16T14:00:00Z","endTime":"2026-03-16T15:30:00Z"},
			{"id":"e4","title":"Broken","type":"appointment",
			 "startTime":"not-a-time","endTime":"2026-03-16T16:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	cal, err := NewHighLevelCalendar(testConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	appts, err := cal.ListAppointments(context.Background(), start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Non-appointment and unparseable events are dropped.
	if len(appts) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appts))
	}

	first := appts[0]
	if first.ID != "e1" || first.Title != "Consult" || first.ContactID != "ct1" {
		t.Fatalf("first appointment = %+v", first)
	}
	if first.Location.Address != "123 Main St" || first.Location.Lat != 40.7 {
		t.Fatalf("first location = %+v", first.Location)
	}
	if first.DurationMinutes != 60 {
		t.Fatalf("first duration = %d, want 60", first.DurationMinutes)
	}

	// Missing durationInMinutes is derived from the interval.
	if appts[1].DurationMinutes != 90 {
		t.Fatalf("derived duration = %d, want 90", appts[1].DurationMinutes)
	}
}

func TestListAppointmentsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cal, err := NewHighLevelCalendar(testConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if _, err := cal.ListAppointments(context.Background(), start, start.AddDate(0, 0, 1)); err == nil {
		t.Fatal("expected error when the calendar api fails")
	}
}

func TestCreateAppointment(t *testing.T) {
	var payload createEventRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"id":"evt_42"}`))
	}))
	defer srv.Close()

	geo := &stubGeocoder{loc: &domain.Location{Lat: 40.7, Lng: -74.0, Address: "123 Main St"}}
	cal, err := NewHighLevelCalendar(testConfig(srv.URL), geo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	result, err := cal.CreateAppointment(context.Background(), ports.AppointmentRequest{
		LeadID:          "lead_1",
		StartTime:       start,
		DurationMinutes: 60,
		Address:         "123 Main St",
		Title:           "Consultation",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.ID != "evt_42" {
		t.Fatalf("id = %q, want evt_42", result.ID)
	}
	if !result.EndTime.Equal(start.Add(time.Hour)) {
		t.Fatalf("end = %v, want %v", result.EndTime, start.Add(time.Hour))
	}

	if payload.ContactID != "lead_1" || payload.CalendarID != "cal_1" || payload.LocationID != "loc_1" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Location.Latitude != 40.7 {
		t.Fatalf("payload location = %+v", payload.Location)
	}
}

func TestCreateAppointmentUnresolvableAddress(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cal, err := NewHighLevelCalendar(testConfig(srv.URL), &stubGeocoder{loc: nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := cal.CreateAppointment(context.Background(), ports.AppointmentRequest{
		LeadID:          "lead_1",
		StartTime:       time.Now(),
		DurationMinutes: 60,
		Address:         "nowhere",
	})
	if err != nil {
		t.Fatalf("unresolvable address should be a soft failure, got %v", err)
	}
	if result.Success {
		t.Fatal("expected Success=false")
	}
	if result.Message == "" {
		t.Fatal("expected an explanatory message")
	}
	if called {
		t.Fatal("calendar api should not be called without coordinates")
	}
}

func TestCreateAppointmentCalendarRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slot taken", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	geo := &stubGeocoder{loc: &domain.Location{Lat: 40.7, Lng: -74.0}}
	cal, err := NewHighLevelCalendar(testConfig(srv.URL), geo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := cal.CreateAppointment(context.Background(), ports.AppointmentRequest{
		LeadID:          "lead_1",
		StartTime:       time.Now(),
		DurationMinutes: 60,
		Address:         "123 Main St",
	})
	if err != nil {
		t.Fatalf("rejection should be a soft failure, got %v", err)
	}
	if result.Success {
		t.Fatal("expected Success=false")
	}
}
