package dto

import "time"

type SlotResponse struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	EfficiencyScore float64   `json:"efficiency_score"`
}

type SlotsResponse struct {
	Slots               []SlotResponse `json:"slots"`
	LeadAddress         string         `json:"lead_address"`
	AppointmentDuration int            `json:"appointment_duration"`
	Date                *time.Time     `json:"date,omitempty"`
	Message             string         `json:"message"`
}
