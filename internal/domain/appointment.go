package domain

import "time"

// Appointment is an existing booking on the external calendar, read-only to
// the slot engine. DurationMinutes is derived from the interval by the
// calendar adapter when the backend does not supply it.
type Appointment struct {
	ID              string
	Title           string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Location        Location
	ContactID       string
	CalendarID      string
	LocationID      string
}
