package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"appointment-slot-service/internal/api/dto"
	"appointment-slot-service/internal/ports"
	"appointment-slot-service/internal/services"
)

// SlotHandler serves ranked appointment slots for a lead.
type SlotHandler struct {
	Geocoder ports.Geocoder
	Calendar ports.CalendarSource
	Travel   ports.TravelEstimator
	Planner  services.PlannerConfig
}

// List handles GET /slots?lead_address=...&duration=...&date=...
//
// duration is minutes; date accepts RFC 3339 or plain YYYY-MM-DD and narrows
// the search to that single day.
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	leadAddress := r.URL.Query().Get("lead_address")
	if leadAddress == "" {
		writeError(w, r, http.StatusBadRequest, "lead_address is required")
		return
	}

	duration := h.Planner.DefaultDurationMinutes
	if v := r.URL.Query().Get("duration"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 15 {
			writeError(w, r, http.StatusBadRequest, "duration must be an integer >= 15")
			return
		}
		duration = d
	}

	var targetDate *time.Time
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := parseDateParam(v, h.Planner.Timezone)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		targetDate = &parsed
	}

	query := services.SlotQuery{
		LeadAddress:     leadAddress,
		DurationMinutes: duration,
		TargetDate:      targetDate,
	}

	slots, err := services.FindBestSlots(r.Context(), query, h.Planner, h.Geocoder, h.Calendar, h.Travel)
	if err != nil {
		log.Printf("find best slots failed: %v", err)
		if errors.Is(err, services.ErrCalendarUnavailable) {
			writeError(w, r, http.StatusBadGateway, "calendar unavailable")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SlotsResponse{
		Slots:               make([]dto.SlotResponse, 0, len(slots)),
		LeadAddress:         leadAddress,
		AppointmentDuration: duration,
		Date:                targetDate,
		Message:             "Found " + strconv.Itoa(len(slots)) + " available slots",
	}
	for _, s := range slots {
		res.Slots = append(res.Slots, dto.SlotResponse{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			EfficiencyScore: s.EfficiencyScore,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func parseDateParam(v string, tz *time.Location) (time.Time, error) {
	if tz == nil {
		tz = time.Local
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", v, tz)
}
