package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"appointment-slot-service/internal/platform/obs"
)

// SQLTravelCache is the Postgres variant of the durable travel-minutes
// cache, keyed by PairKey.
type SQLTravelCache struct {
	DB *sql.DB
}

func NewSQLTravelCache(db *sql.DB) *SQLTravelCache {
	return &SQLTravelCache{DB: db}
}

// Fetch the cached travel minutes for a pair key.
func (s *SQLTravelCache) Get(ctx context.Context, key string) (_ int, _ bool, err error) {
	defer obs.Time(ctx, "travel.cache.Get")(&err)

	if s.DB == nil {
		return 0, false, errors.New("travel cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return 0, false, errors.New("get travel cache: key must not be empty")
	}

	q := `
	SELECT minutes
	FROM travel_cache
	WHERE pair = $1;
	`

	var minutes int
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel cache: query travel_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store travel minutes for a pair key.
func (s *SQLTravelCache) Put(ctx context.Context, key string, minutes int) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert travel cache: key must not be empty")
	}

	q := `
	INSERT INTO travel_cache (pair, minutes)
	VALUES ($1, $2)
	ON CONFLICT (pair) DO UPDATE
	SET minutes = EXCLUDED.minutes;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, minutes); err != nil {
		return fmt.Errorf("insert travel cache pair=%q: %w", key, err)
	}

	return nil
}
