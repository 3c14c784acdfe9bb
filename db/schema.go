package db

import (
	"database/sql"
	"fmt"

	"labcollect/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	schema := sqliteSchema
	if databaseType == cliparse.DatabasePostgres {
		schema = postgresSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are stored as RFC 3339 TEXT in both backends so that row
// payloads and dates round-trip identically regardless of driver.
const sqliteSchema = `
-- Users (email is the whole identity; no credential)
CREATE TABLE IF NOT EXISTS users (
    email TEXT PRIMARY KEY
);

-- Experiments (rows live in the JSON 'data' payload)
CREATE TABLE IF NOT EXISTS experiments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL REFERENCES users(email),
    experiment_type TEXT NOT NULL,
    experiment_name TEXT NOT NULL,
    date TEXT NOT NULL,
    data TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_experiments_email ON experiments(email);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    email TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS experiments (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL REFERENCES users(email),
    experiment_type TEXT NOT NULL,
    experiment_name TEXT NOT NULL,
    date TEXT NOT NULL,
    data TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_experiments_email ON experiments(email);
`
