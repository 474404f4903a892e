package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"appointment-slot-service/internal/api/dto"
	"appointment-slot-service/internal/ports"
)

// AppointmentHandler books appointments on the external calendar.
type AppointmentHandler struct {
	Calendar     ports.CalendarSource
	DefaultTitle string
}

// Create handles POST /appointments.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AppointmentCreateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.LeadID == "" {
		writeError(w, r, http.StatusBadRequest, "lead_id is required")
		return
	}
	if req.Address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}
	if req.StartTime.IsZero() {
		writeError(w, r, http.StatusBadRequest, "start_time is required")
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}
	if duration < 15 {
		writeError(w, r, http.StatusBadRequest, "duration_minutes must be >= 15")
		return
	}

	title := req.Title
	if title == "" {
		title = h.DefaultTitle
	}

	result, err := h.Calendar.CreateAppointment(r.Context(), ports.AppointmentRequest{
		LeadID:          req.LeadID,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Address:         req.Address,
		Title:           title,
	})
	if err != nil {
		log.Printf("create appointment failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.AppointmentResponse{
		ID:        result.ID,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Title:     result.Title,
		Success:   result.Success,
		Message:   result.Message,
	}

	if !result.Success {
		writeJSON(w, r, http.StatusBadRequest, res)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}
