package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"appointment-slot-service/internal/domain"
)

// SQLite-backed cache mapping address strings to geographic coordinates.
// Address keys are expected to be consistent (e.g., normalized) by the
// caller. Geocode results do not expire: a street address does not move.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached location for an address. The second return reports
// whether the address was present.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (domain.Location, bool, error) {
	if s.DB == nil {
		return domain.Location{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Location{}, false, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT lat, lng
	FROM geocode_cache
	WHERE address = ?;
	`

	var lat, lng float64
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&lat, &lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Location{Lat: lat, Lng: lng, Address: address}, true, nil
}

// Store an address -> coordinates mapping.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, loc domain.Location) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (address, lat, lng)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, address, loc.Lat, loc.Lng); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
