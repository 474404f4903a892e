package api

import (
	"net/http"

	"appointment-slot-service/internal/api/handlers"
	"appointment-slot-service/internal/ports"
	"appointment-slot-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	geo ports.Geocoder,
	cal ports.CalendarSource,
	travel ports.TravelEstimator,
	planner services.PlannerConfig,
	defaultTitle string,
) http.Handler {
	mux := http.NewServeMux()

	slotHandler := &handlers.SlotHandler{
		Geocoder: geo,
		Calendar: cal,
		Travel:   travel,
		Planner:  planner,
	}
	appointmentHandler := &handlers.AppointmentHandler{
		Calendar:     cal,
		DefaultTitle: defaultTitle,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/slots", slotHandler.List)
	mux.HandleFunc("/appointments", appointmentHandler.Create)

	return loggingMiddleware(mux)
}
