package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed cache of priced coordinate pairs, keyed by PairKey. This is
// the durable layer behind the in-memory TTL cache: real routed results
// survive restarts, while the TTL layer bounds staleness within a process.
type SqliteTravelCache struct {
	DB *sql.DB
}

func NewSqliteTravelCache(db *sql.DB) *SqliteTravelCache {
	return &SqliteTravelCache{DB: db}
}

// Fetch the cached travel minutes for a pair key.
func (s *SqliteTravelCache) Get(ctx context.Context, key string) (int, bool, error) {
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
	WHERE pair = ?;
	`

	var minutes int
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel cache: query travel_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store travel minutes for a pair key.
func (s *SqliteTravelCache) Put(ctx context.Context, key string, minutes int) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert travel cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO travel_cache (pair, minutes)
	VALUES (?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, minutes); err != nil {
		return fmt.Errorf("insert travel cache pair=%q: %w", key, err)
	}

	return nil
}
