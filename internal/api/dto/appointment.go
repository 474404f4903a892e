package dto

import "time"

type AppointmentCreateRequest struct {
	LeadID          string    `json:"lead_id"`
	StartTime       time.Time `json:"start_time"`
	Address         string    `json:"address"`
	DurationMinutes int       `json:"duration_minutes"`
	Title           string    `json:"title"`
}

type AppointmentResponse struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Title     string    `json:"title"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
}
