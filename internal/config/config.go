package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"appointment-slot-service/internal/domain"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a number, got %q", key, v)
	}
	return f, nil
}

// Settings is the process-wide configuration, parsed once at startup and
// read-only afterwards.
type Settings struct {
	Port       string
	SQLitePath string
	// When set, cache storage uses Postgres instead of local SQLite.
	DatabaseURL string

	CalendarAPIBaseURL string
	CalendarAPIToken   string
	CalendarID         string
	CalendarLocationID string
	CalendarAPIVersion string
	DefaultTitle       string

	RoutesAPIKey string

	BusinessHours          domain.BusinessHours
	BufferMinutes          int
	DefaultDurationMinutes int
	LookaheadDays          int
	SlotIntervalMinutes    int
	MaxResults             int
	HomeBase               domain.Location
	CacheTTL               time.Duration
	Timezone               *time.Location
}

// Load reads settings from the environment. Wall-clock, numeric, and
// timezone values are validated here so the rest of the process can treat
// configuration as trusted.
func Load() (*Settings, error) {
	hours, err := domain.ParseBusinessHours(
		Get("BUSINESS_HOURS_START", "09:00"),
		Get("BUSINESS_HOURS_END", "18:00"),
	)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	buffer, err := getInt("APPOINTMENT_BUFFER_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	duration, err := getInt("DEFAULT_APPOINTMENT_DURATION", 60)
	if err != nil {
		return nil, err
	}
	lookahead, err := getInt("MAX_DAYS_AHEAD", 7)
	if err != nil {
		return nil, err
	}
	interval, err := getInt("SLOT_INTERVAL_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	maxResults, err := getInt("MAX_RESULTS", 10)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getInt("CACHE_TTL", 3600)
	if err != nil {
		return nil, err
	}

	homeLat, err := getFloat("HOME_BASE_LAT", 0)
	if err != nil {
		return nil, err
	}
	homeLng, err := getFloat("HOME_BASE_LNG", 0)
	if err != nil {
		return nil, err
	}

	tzName := Get("TIMEZONE", "Local")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE %q: %w", tzName, err)
	}

	return &Settings{
		Port:        Get("PORT", "8080"),
		SQLitePath:  Get("SQLITE_PATH", "data/cache.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		CalendarAPIBaseURL: Get("CALENDAR_API_BASE_URL", "https://services.leadconnectorhq.com"),
		CalendarAPIToken:   os.Getenv("CALENDAR_API_TOKEN"),
		CalendarID:         os.Getenv("CALENDAR_ID"),
		CalendarLocationID: os.Getenv("CALENDAR_LOCATION_ID"),
		CalendarAPIVersion: Get("CALENDAR_API_VERSION", "2021-07-28"),
		DefaultTitle:       Get("DEFAULT_APPOINTMENT_TITLE", "Consultation"),

		RoutesAPIKey: os.Getenv("ROUTES_API_KEY"),

		BusinessHours:          hours,
		BufferMinutes:          buffer,
		DefaultDurationMinutes: duration,
		LookaheadDays:          lookahead,
		SlotIntervalMinutes:    interval,
		MaxResults:             maxResults,
		HomeBase:               domain.Location{Lat: homeLat, Lng: homeLng, Address: "Home Base"},
		CacheTTL:               time.Duration(cacheTTL) * time.Second,
		Timezone:               tz,
	}, nil
}
