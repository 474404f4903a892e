package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"appointment-slot-service/internal/adapters/cache"
	"appointment-slot-service/internal/domain"
	"appointment-slot-service/internal/platform/httpx"
	"appointment-slot-service/internal/platform/obs"
)

// PersistentTravelCache is the durable layer of travel-minutes caching,
// shared across restarts. Only genuinely routed results are persisted;
// straight-line estimates stay in the TTL layer.
type PersistentTravelCache interface {
	Get(ctx context.Context, key string) (int, bool, error)
	Put(ctx context.Context, key string, minutes int) error
}

// RoutesTravelProvider implements TravelEstimator against a Routes-style
// directions API.
//
// It coordinates:
//   - A time-bounded in-memory cache per coordinate pair
//   - A persistent travel-minutes cache
//   - External API calls with retry/backoff
//   - Straight-line fallback estimation when the API is unavailable
//
// The provider never surfaces backend failures: any error on the API path
// degrades to the haversine estimate. Safe for concurrent use.
type RoutesTravelProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	memoryCache *cache.TTLTravelCache
	store       PersistentTravelCache
}

func NewRoutesTravelProvider(
	apiKey string,
	memoryCache *cache.TTLTravelCache,
	store PersistentTravelCache,
) *RoutesTravelProvider {
	if apiKey == "" {
		log.Println("routes api key not set; all travel times will use straight-line estimates")
	}

	return &RoutesTravelProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://routes.googleapis.com",
		memoryCache: memoryCache,
		store:       store,
	}
}

// TravelTimeMinutes returns estimated driving minutes between two points.
// Lookup order: memory cache, persistent cache, routes API, straight-line
// estimate. The returned value is always >= 0 and the error is reserved for
// context cancellation.
func (p *RoutesTravelProvider) TravelTimeMinutes(
	ctx context.Context,
	origin, destination domain.Location,
) (_ int, err error) {
	defer obs.Time(ctx, "routes.TravelTimeMinutes")(&err)

	if origin.SamePlace(destination) {
		return 0, nil
	}

	key := cache.PairKey(origin, destination)

	if p.memoryCache != nil {
		if minutes, ok := p.memoryCache.Get(key); ok {
			return minutes, nil
		}
	}

	if p.store != nil {
		minutes, ok, err := p.store.Get(ctx, key)
		if err != nil {
			log.Printf("travel cache read failed: %v", err)
		} else if ok {
			if p.memoryCache != nil {
				p.memoryCache.Put(key, minutes)
			}
			return minutes, nil
		}
	}

	minutes, fetchErr := p.fetchTravelMinutes(ctx, origin, destination)
	if fetchErr != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		// Availability over strict accuracy: degrade to an estimate.
		log.Printf("routes api unavailable, using straight-line estimate: %v", fetchErr)
		minutes = estimateTravelMinutes(origin, destination)

		if p.memoryCache != nil {
			p.memoryCache.Put(key, minutes)
		}
		return minutes, nil
	}

	if p.memoryCache != nil {
		p.memoryCache.Put(key, minutes)
	}
	if p.store != nil {
		if err := p.store.Put(ctx, key, minutes); err != nil {
			log.Printf("travel cache write failed: %v", err)
		}
	}

	return minutes, nil
}

type computeRoutesRequest struct {
	Origin      latLngWaypoint `json:"origin"`
	Destination latLngWaypoint `json:"destination"`
	TravelMode  string         `json:"travelMode"`
}

type latLngWaypoint struct {
	Location struct {
		LatLng struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"latLng"`
	} `json:"location"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration string `json:"duration"`
	} `json:"routes"`
}

// fetchTravelMinutes asks the routes API for the driving duration of one
// leg. Duration strings come back as whole seconds ("1234s") and are rounded
// up to minutes.
func (p *RoutesTravelProvider) fetchTravelMinutes(
	ctx context.Context,
	origin, destination domain.Location,
) (int, error) {
	if p.apiKey == "" {
		return 0, fmt.Errorf("routes api key not configured")
	}

	endpoint := p.baseURL + "/directions/v2:computeRoutes"

	body := computeRoutesRequest{TravelMode: "DRIVE"}
	body.Origin.Location.LatLng.Latitude = origin.Lat
	body.Origin.Location.LatLng.Longitude = origin.Lng
	body.Destination.Location.LatLng.Latitude = destination.Lat
	body.Destination.Location.LatLng.Longitude = destination.Lng

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal routes request: %w", err)
	}

	resp, err := httpx.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create routes request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", p.apiKey)
		req.Header.Set("X-Goog-FieldMask", "routes.duration")
		return req, nil
	})
	if err != nil {
		return 0, fmt.Errorf("routes request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode routes response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return 0, fmt.Errorf("no routes in response")
	}

	seconds, err := parseDurationSeconds(decoded.Routes[0].Duration)
	if err != nil {
		return 0, fmt.Errorf("parse route duration: %w", err)
	}

	return (seconds + 59) / 60, nil
}

func parseDurationSeconds(s string) (int, error) {
	trimmed := strings.TrimSuffix(s, "s")
	if trimmed == s {
		return 0, fmt.Errorf("duration %q missing seconds suffix", s)
	}

	seconds, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("duration %q: %w", s, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("duration %q is negative", s)
	}

	return seconds, nil
}
