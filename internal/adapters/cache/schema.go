package cache

import (
	"database/sql"
	"fmt"
)

// InitSqliteSchema creates the cache tables on a local SQLite database.
// Safe to run on every startup.
func InitSqliteSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lat REAL NOT NULL,
			lng REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS travel_cache (
			pair TEXT PRIMARY KEY,
			minutes INTEGER NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init sqlite cache schema: %w", err)
		}
	}

	return nil
}

// InitSQLSchema creates the cache tables on Postgres.
func InitSQLSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS travel_cache (
			pair TEXT PRIMARY KEY,
			minutes INTEGER NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init sql cache schema: %w", err)
		}
	}

	return nil
}
