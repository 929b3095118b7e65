// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Dates
CREATE TABLE IF NOT EXISTS dates (
    date_id TEXT PRIMARY KEY,
    date DATE NOT NULL UNIQUE
);

-- Games
CREATE TABLE IF NOT EXISTS games (
    game_id TEXT PRIMARY KEY,
    date_id TEXT NOT NULL REFERENCES dates(date_id) ON DELETE CASCADE,
    game_no INTEGER NOT NULL,
    score_str TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_date_id ON games(date_id);
`
