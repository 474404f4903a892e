package ports

import (
	"context"
	"time"

	"appointment-slot-service/internal/domain"
)

// AppointmentRequest describes a booking to create on the external calendar.
type AppointmentRequest struct {
	LeadID          string
	StartTime       time.Time
	DurationMinutes int
	Address         string
	Title           string
}

// AppointmentResult is the outcome of a creation attempt. Business-level
// failures (unresolvable address, calendar rejection) come back with
// Success=false and a human-readable Message rather than an error.
type AppointmentResult struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Title     string
	Success   bool
	Message   string
}

// Port: a boundary for reading and writing appointments on the external
// calendar backend.
type CalendarSource interface {
	// List appointments within [start, end). A failed fetch is an error,
	// never an empty list: callers must be able to tell a free calendar
	// from an unreachable one.
	ListAppointments(ctx context.Context, start, end time.Time) ([]domain.Appointment, error)

	// Create a booking. Returns a soft-failure result for business errors.
	CreateAppointment(ctx context.Context, req AppointmentRequest) (AppointmentResult, error)
}
