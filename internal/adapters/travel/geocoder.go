package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"appointment-slot-service/internal/domain"
	"appointment-slot-service/internal/platform/httpx"
	"appointment-slot-service/internal/platform/obs"
)

// PersistentGeocodeCache fronts the geocoding API with durable
// address -> coordinates storage.
type PersistentGeocodeCache interface {
	Get(ctx context.Context, address string) (domain.Location, bool, error)
	Put(ctx context.Context, address string, loc domain.Location) error
}

// MapsGeocoder resolves street addresses via a Maps-style geocoding
// endpoint. Unresolvable addresses are a nil result, not an error; only
// transport-level failures surface as errors.
type MapsGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   PersistentGeocodeCache
}

func NewMapsGeocoder(apiKey string, geocodeCache PersistentGeocodeCache) *MapsGeocoder {
	if apiKey == "" {
		log.Println("geocoding api key not set; addresses will not resolve")
	}

	return &MapsGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		cache:   geocodeCache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates, consulting the persistent
// cache first.
func (g *MapsGeocoder) Geocode(ctx context.Context, address string) (_ *domain.Location, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return nil, nil
	}

	if g.cache != nil {
		loc, ok, cacheErr := g.cache.Get(ctx, norm)
		if cacheErr != nil {
			log.Printf("geocode cache read failed: %v", cacheErr)
		} else if ok {
			return &loc, nil
		}
	}

	if g.apiKey == "" {
		log.Printf("geocode skipped for %q: api key not configured", norm)
		return nil, nil
	}

	endpoint := g.baseURL + "/maps/api/geocode/json"

	resp, err := httpx.DoWithRetry(ctx, g.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create geocode request: %w", err)
		}
		q := req.URL.Query()
		q.Set("address", norm)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		log.Printf("geocoding returned no results for %q: status=%s", norm, decoded.Status)
		return nil, nil
	}

	loc := domain.Location{
		Lat:     decoded.Results[0].Geometry.Location.Lat,
		Lng:     decoded.Results[0].Geometry.Location.Lng,
		Address: norm,
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, norm, loc); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return &loc, nil
}
