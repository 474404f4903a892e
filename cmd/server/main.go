package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"appointment-slot-service/internal/adapters/cache"
	"appointment-slot-service/internal/adapters/calendar"
	"appointment-slot-service/internal/adapters/travel"
	"appointment-slot-service/internal/api"
	"appointment-slot-service/internal/config"
	"appointment-slot-service/internal/platform/db"
	"appointment-slot-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (calendar API, routes API, cache storage)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Cache storage: Postgres when DATABASE_URL is set, local SQLite
	// otherwise. Both back the same geocode and travel-minutes caches.
	var geocodeCache travel.PersistentGeocodeCache
	var travelCache travel.PersistentTravelCache

	if settings.DatabaseURL != "" {
		pg, err := db.Open(settings.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSQLSchema(pg); err != nil {
			log.Fatal(err)
		}

		geocodeCache = cache.NewSQLGeocodeCache(pg)
		travelCache = cache.NewSQLTravelCache(pg)
	} else {
		lite, err := openSqlite(settings.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer lite.Close()

		if err := cache.InitSqliteSchema(lite); err != nil {
			log.Fatal(err)
		}

		geocodeCache = cache.NewSqliteGeocodeCache(lite)
		travelCache = cache.NewSqliteTravelCache(lite)
	}

	geocoder := travel.NewMapsGeocoder(settings.RoutesAPIKey, geocodeCache)

	memoryCache := cache.NewTTLTravelCache(settings.CacheTTL)
	travelProvider := travel.NewRoutesTravelProvider(settings.RoutesAPIKey, memoryCache, travelCache)

	calendarSource, err := calendar.NewHighLevelCalendar(calendar.Config{
		BaseURL:    settings.CalendarAPIBaseURL,
		Token:      settings.CalendarAPIToken,
		CalendarID: settings.CalendarID,
		LocationID: settings.CalendarLocationID,
		APIVersion: settings.CalendarAPIVersion,
	}, geocoder)
	if err != nil {
		log.Fatal(err)
	}

	planner := services.PlannerConfig{
		BusinessHours:          settings.BusinessHours,
		BufferMinutes:          settings.BufferMinutes,
		DefaultDurationMinutes: settings.DefaultDurationMinutes,
		LookaheadDays:          settings.LookaheadDays,
		SlotIntervalMinutes:    settings.SlotIntervalMinutes,
		MaxResults:             settings.MaxResults,
		HomeBase:               settings.HomeBase,
		Timezone:               settings.Timezone,
	}

	router := api.NewRouter(geocoder, calendarSource, travelProvider, planner, settings.DefaultTitle)

	// Timeouts are tuned for cold-cache optimization requests (several
	// external API calls per request).
	log.Printf("Server listening addr=:%s", settings.Port)
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSqlite(path string) (*sql.DB, error) {
	lite, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", path, err)
	}

	if err := lite.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", path, err)
	}

	return lite, nil
}
