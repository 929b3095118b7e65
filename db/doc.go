// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and data access for dates and games.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

	dates(date_id TEXT PK, date DATE UNIQUE)
	games(game_id TEXT PK, date_id TEXT FK, game_no INTEGER, score_str TEXT)

One date has many games; games.date_id uses ON DELETE CASCADE. game_no is the
1-based sequence number of the game within its date, assigned at insert time
as count+1 and never renumbered afterwards, so gaps appear after deletes.

# Store

Store is the interface handlers depend on; New wraps a *sql.DB into the
PostgreSQL implementation:

	store := db.New(conn)
	games, err := store.ListGamesForDate(ctx, dateID)

Reads are single queries. The multi-step writes each run in one transaction:

  - CreateGame: lock-or-insert the date row, count its games, insert the
    game with game_no = count+1. A unique violation from a concurrent date
    insert triggers one retry, which finds the row instead.
  - UpdateGame: lock the game, resolve or create the target date when one
    is supplied, apply score changes, write once.
  - DeleteGame: delete-returning the game, then delete its date if no games
    remain on it.

# Errors

Absent rows surface as ErrNotFound. Everything else is wrapped with query
context. IsUniqueViolation detects PostgreSQL error code 23505.
*/
package db
