package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"appointment-slot-service/internal/domain"
	"appointment-slot-service/internal/platform/httpx"
	"appointment-slot-service/internal/platform/obs"
	"appointment-slot-service/internal/ports"
)

// Config identifies the calendar and account the adapter talks to.
type Config struct {
	BaseURL    string
	Token      string
	CalendarID string
	LocationID string
	APIVersion string
}

// HighLevelCalendar implements CalendarSource against a HighLevel-style
// calendar API (Bearer token plus a Version header on every call).
//
// Listing failures surface as errors after retries: an unreachable calendar
// must never look like a free one. Creation failures come back as
// soft-failure results with a human-readable message.
type HighLevelCalendar struct {
	session  *http.Client
	cfg      Config
	geocoder ports.Geocoder
}

func NewHighLevelCalendar(cfg Config, geocoder ports.Geocoder) (*HighLevelCalendar, error) {
	if cfg.Token == "" {
		return nil, errors.New("calendar api token is empty")
	}
	if cfg.CalendarID == "" || cfg.LocationID == "" {
		return nil, errors.New("calendar id and location id are required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://services.leadconnectorhq.com"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2021-07-28"
	}

	return &HighLevelCalendar{
		session:  &http.Client{Timeout: 10 * time.Second},
		cfg:      cfg,
		geocoder: geocoder,
	}, nil
}

func (c *HighLevelCalendar) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Version", c.cfg.APIVersion)
}

type eventsResponse struct {
	Events []struct {
		ID                string `json:"id"`
		Title             string `json:"title"`
		Type              string `json:"type"`
		StartTime         string `json:"startTime"`
		EndTime           string `json:"endTime"`
		DurationInMinutes int    `json:"durationInMinutes"`
		ContactID         string `json:"contactId"`
		CalendarID        string `json:"calendarId"`
		LocationID        string `json:"locationId"`
		Location          struct {
			Address   string  `json:"address"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
	} `json:"events"`
}

// ListAppointments fetches calendar events within [start, end) and maps the
// ones typed "appointment" into domain appointments. Events with unparseable
// timestamps are logged and skipped; a failed fetch is an error.
func (c *HighLevelCalendar) ListAppointments(
	ctx context.Context,
	start, end time.Time,
) (_ []domain.Appointment, err error) {
	defer obs.Time(ctx, "calendar.ListAppointments")(&err)

	endpoint := c.cfg.BaseURL + "/calendars/events"

	resp, err := httpx.DoWithRetry(ctx, c.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create events request: %w", err)
		}
		c.setHeaders(req)

		q := req.URL.Query()
		q.Set("calendarId", c.cfg.CalendarID)
		q.Set("locationId", c.cfg.LocationID)
		q.Set("startTime", start.Format(time.RFC3339))
		q.Set("endTime", end.Format(time.RFC3339))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments: events request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("list appointments: decode events response: %w", err)
	}

	appointments := make([]domain.Appointment, 0, len(decoded.Events))
	for _, event := range decoded.Events {
		if event.Type != "appointment" {
			continue
		}

		startTime, err := time.Parse(time.RFC3339, event.StartTime)
		if err != nil {
			log.Printf("skipping event %s: bad startTime %q", event.ID, event.StartTime)
			continue
		}
		endTime, err := time.Parse(time.RFC3339, event.EndTime)
		if err != nil {
			log.Printf("skipping event %s: bad endTime %q", event.ID, event.EndTime)
			continue
		}

		duration := event.DurationInMinutes
		if duration <= 0 {
			duration = int(endTime.Sub(startTime) / time.Minute)
		}

		appointments = append(appointments, domain.Appointment{
			ID:              event.ID,
			Title:           event.Title,
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: duration,
			Location: domain.Location{
				Lat:     event.Location.Latitude,
				Lng:     event.Location.Longitude,
				Address: event.Location.Address,
			},
			ContactID:  event.ContactID,
			CalendarID: event.CalendarID,
			LocationID: event.LocationID,
		})
	}

	return appointments, nil
}

type createEventRequest struct {
	CalendarID        string        `json:"calendarId"`
	LocationID        string        `json:"locationId"`
	ContactID         string        `json:"contactId"`
	Title             string        `json:"title"`
	StartTime         string        `json:"startTime"`
	EndTime           string        `json:"endTime"`
	DurationInMinutes int           `json:"durationInMinutes"`
	Location          eventLocation `json:"location"`
}

type eventLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createEventResponse struct {
	ID string `json:"id"`
}

// CreateAppointment geocodes the address and books the slot. Business-level
// failures (unresolvable address, calendar rejection) come back as a result
// with Success=false; the error return is reserved for geocoder transport
// failures and context cancellation.
func (c *HighLevelCalendar) CreateAppointment(
	ctx context.Context,
	req ports.AppointmentRequest,
) (ports.AppointmentResult, error) {
	end := req.StartTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

	result := ports.AppointmentResult{
		StartTime: req.StartTime,
		EndTime:   end,
		Title:     req.Title,
	}

	loc, err := c.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return result, fmt.Errorf("create appointment: geocode address: %w", err)
	}
	if loc == nil {
		result.Message = fmt.Sprintf("could not geocode address: %s", req.Address)
		log.Printf("create appointment: %s", result.Message)
		return result, nil
	}

	payload, err := json.Marshal(createEventRequest{
		CalendarID:        c.cfg.CalendarID,
		LocationID:        c.cfg.LocationID,
		ContactID:         req.LeadID,
		Title:             req.Title,
		StartTime:         req.StartTime.Format(time.RFC3339),
		EndTime:           end.Format(time.RFC3339),
		DurationInMinutes: req.DurationMinutes,
		Location: eventLocation{
			Address:   req.Address,
			Latitude:  loc.Lat,
			Longitude: loc.Lng,
		},
	})
	if err != nil {
		return result, fmt.Errorf("create appointment: marshal payload: %w", err)
	}

	endpoint := c.cfg.BaseURL + "/calendars/events/appointments"

	resp, err := httpx.DoWithRetry(ctx, c.session, func() (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create appointment request: %w", err)
		}
		c.setHeaders(httpReq)
		httpReq.Header.Set("Content-Type", "application/json")
		return httpReq, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Message = fmt.Sprintf("calendar error: %v", err)
		log.Printf("create appointment failed: %v", err)
		return result, nil
	}
	defer resp.Body.Close()

	var decoded createEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		result.Message = fmt.Sprintf("calendar error: decode response: %v", err)
		return result, nil
	}

	result.ID = decoded.ID
	result.Success = true
	result.Message = "Appointment created successfully"
	return result, nil
}
