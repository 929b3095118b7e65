// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/scorekeeper/models"
)

// DateRow is one row of the dates table.
type DateRow struct {
	DateID string
	Date   models.Date
}

// GameRow is one row of the games table.
type GameRow struct {
	GameID   string
	DateID   string
	GameNo   int
	ScoreStr string
}

// Store is the data-access surface used by the handlers. The multi-step
// writes (CreateGame, UpdateGame, DeleteGame) are atomic: each runs in a
// single transaction.
type Store interface {
	ListDates(ctx context.Context, limit, offset int) ([]DateRow, error)
	ListGamesForDate(ctx context.Context, dateID string) ([]GameRow, error)
	GetGameByID(ctx context.Context, gameID string) (GameRow, error)
	GetDateByID(ctx context.Context, dateID string) (DateRow, error)
	GetDateByValue(ctx context.Context, date models.Date) (DateRow, error)
	CreateGame(ctx context.Context, date models.Date, scoreStr string) (GameRow, DateRow, error)
	UpdateGame(ctx context.Context, gameID string, date *models.Date, scoreStr *string) (GameRow, DateRow, error)
	DeleteGame(ctx context.Context, gameID string) error
}

// Postgres implements Store against a PostgreSQL database.
type Postgres struct {
	db *sql.DB
}

// New creates a Store backed by the given database connection.
func New(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx so the row-level helpers
// can run inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ListDates returns dates ordered by date descending.
func (s *Postgres) ListDates(ctx context.Context, limit, offset int) ([]DateRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date_id, date
		FROM dates
		ORDER BY date DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer rows.Close()

	dates := []DateRow{}
	for rows.Next() {
		var d DateRow
		if err := rows.Scan(&d.DateID, &d.Date); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ListGamesForDate returns the games on a date ordered by game_no ascending.
func (s *Postgres) ListGamesForDate(ctx context.Context, dateID string) ([]GameRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, date_id, game_no, score_str
		FROM games
		WHERE date_id = $1
		ORDER BY game_no ASC
	`, dateID)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []GameRow{}
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.GameID, &g.DateID, &g.GameNo, &g.ScoreStr); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetGameByID returns one game, or ErrNotFound.
func (s *Postgres) GetGameByID(ctx context.Context, gameID string) (GameRow, error) {
	return getGameByID(ctx, s.db, gameID)
}

// GetDateByID returns one date by its ID, or ErrNotFound.
func (s *Postgres) GetDateByID(ctx context.Context, dateID string) (DateRow, error) {
	return getDateByID(ctx, s.db, dateID)
}

// GetDateByValue returns one date by its calendar value, or ErrNotFound.
func (s *Postgres) GetDateByValue(ctx context.Context, date models.Date) (DateRow, error) {
	var d DateRow
	err := s.db.QueryRowContext(ctx, `
		SELECT date_id, date
		FROM dates
		WHERE date = $1
	`, date).Scan(&d.DateID, &d.Date)
	if err == sql.ErrNoRows {
		return DateRow{}, ErrNotFound
	}
	if err != nil {
		return DateRow{}, fmt.Errorf("query date: %w", err)
	}
	return d, nil
}

// CreateGame inserts a game, creating its date first if needed and assigning
// game_no = existing count + 1. A concurrent insert of the same date aborts
// the first attempt with a unique violation; the retry finds the row instead.
func (s *Postgres) CreateGame(ctx context.Context, date models.Date, scoreStr string) (GameRow, DateRow, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		game, dateRow, err := s.createGameTx(ctx, date, scoreStr)
		if err == nil {
			return game, dateRow, nil
		}
		if !IsUniqueViolation(err) {
			return GameRow{}, DateRow{}, err
		}
		lastErr = err
	}
	return GameRow{}, DateRow{}, lastErr
}

func (s *Postgres) createGameTx(ctx context.Context, date models.Date, scoreStr string) (GameRow, DateRow, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GameRow{}, DateRow{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the date row so concurrent creates on the same date serialize
	// and cannot compute the same game_no.
	dateRow, err := lockDateByValue(ctx, tx, date)
	if errors.Is(err, ErrNotFound) {
		dateRow, err = insertDate(ctx, tx, date)
	}
	if err != nil {
		return GameRow{}, DateRow{}, err
	}

	count, err := countGamesForDate(ctx, tx, dateRow.DateID)
	if err != nil {
		return GameRow{}, DateRow{}, err
	}

	game := GameRow{
		GameID:   uuid.NewString(),
		DateID:   dateRow.DateID,
		GameNo:   count + 1,
		ScoreStr: scoreStr,
	}
	if err := insertGame(ctx, tx, game); err != nil {
		return GameRow{}, DateRow{}, err
	}

	if err := tx.Commit(); err != nil {
		return GameRow{}, DateRow{}, fmt.Errorf("commit transaction: %w", err)
	}
	return game, dateRow, nil
}

// UpdateGame applies the non-nil fields to a game. A new date value is
// resolved to an existing date row or a freshly inserted one, then the game
// is repointed. game_no is never reassigned, even when the game moves.
func (s *Postgres) UpdateGame(ctx context.Context, gameID string, date *models.Date, scoreStr *string) (GameRow, DateRow, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		game, dateRow, err := s.updateGameTx(ctx, gameID, date, scoreStr)
		if err == nil {
			return game, dateRow, nil
		}
		if !IsUniqueViolation(err) {
			return GameRow{}, DateRow{}, err
		}
		lastErr = err
	}
	return GameRow{}, DateRow{}, lastErr
}

func (s *Postgres) updateGameTx(ctx context.Context, gameID string, date *models.Date, scoreStr *string) (GameRow, DateRow, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GameRow{}, DateRow{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	game, err := lockGameByID(ctx, tx, gameID)
	if err != nil {
		return GameRow{}, DateRow{}, err
	}

	dateRow, err := getDateByID(ctx, tx, game.DateID)
	if err != nil {
		return GameRow{}, DateRow{}, err
	}

	if date != nil {
		target, err := lockDateByValue(ctx, tx, *date)
		if errors.Is(err, ErrNotFound) {
			target, err = insertDate(ctx, tx, *date)
		}
		if err != nil {
			return GameRow{}, DateRow{}, err
		}
		game.DateID = target.DateID
		dateRow = target
	}

	if scoreStr != nil {
		game.ScoreStr = *scoreStr
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE games
		SET date_id = $1, score_str = $2
		WHERE game_id = $3
	`, game.DateID, game.ScoreStr, game.GameID)
	if err != nil {
		return GameRow{}, DateRow{}, fmt.Errorf("update game: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return GameRow{}, DateRow{}, fmt.Errorf("commit transaction: %w", err)
	}
	return game, dateRow, nil
}

// DeleteGame removes a game and, when it was the last game on its date,
// the date row as well. Returns ErrNotFound when no game matched.
func (s *Postgres) DeleteGame(ctx context.Context, gameID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var deleted GameRow
	err = tx.QueryRowContext(ctx, `
		DELETE FROM games
		WHERE game_id = $1
		RETURNING game_id, date_id, game_no, score_str
	`, gameID).Scan(&deleted.GameID, &deleted.DateID, &deleted.GameNo, &deleted.ScoreStr)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	remaining, err := countGamesForDate(ctx, tx, deleted.DateID)
	if err != nil {
		return err
	}

	if remaining == 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM dates
			WHERE date_id = $1
		`, deleted.DateID)
		if err != nil {
			return fmt.Errorf("delete date: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Row-level helpers shared between pool and transaction queries.

func getGameByID(ctx context.Context, q querier, gameID string) (GameRow, error) {
	var g GameRow
	err := q.QueryRowContext(ctx, `
		SELECT game_id, date_id, game_no, score_str
		FROM games
		WHERE game_id = $1
	`, gameID).Scan(&g.GameID, &g.DateID, &g.GameNo, &g.ScoreStr)
	if err == sql.ErrNoRows {
		return GameRow{}, ErrNotFound
	}
	if err != nil {
		return GameRow{}, fmt.Errorf("query game: %w", err)
	}
	return g, nil
}

func lockGameByID(ctx context.Context, tx *sql.Tx, gameID string) (GameRow, error) {
	var g GameRow
	err := tx.QueryRowContext(ctx, `
		SELECT game_id, date_id, game_no, score_str
		FROM games
		WHERE game_id = $1
		FOR UPDATE
	`, gameID).Scan(&g.GameID, &g.DateID, &g.GameNo, &g.ScoreStr)
	if err == sql.ErrNoRows {
		return GameRow{}, ErrNotFound
	}
	if err != nil {
		return GameRow{}, fmt.Errorf("query game: %w", err)
	}
	return g, nil
}

func getDateByID(ctx context.Context, q querier, dateID string) (DateRow, error) {
	var d DateRow
	err := q.QueryRowContext(ctx, `
		SELECT date_id, date
		FROM dates
		WHERE date_id = $1
	`, dateID).Scan(&d.DateID, &d.Date)
	if err == sql.ErrNoRows {
		return DateRow{}, ErrNotFound
	}
	if err != nil {
		return DateRow{}, fmt.Errorf("query date: %w", err)
	}
	return d, nil
}

func lockDateByValue(ctx context.Context, tx *sql.Tx, date models.Date) (DateRow, error) {
	var d DateRow
	err := tx.QueryRowContext(ctx, `
		SELECT date_id, date
		FROM dates
		WHERE date = $1
		FOR UPDATE
	`, date).Scan(&d.DateID, &d.Date)
	if err == sql.ErrNoRows {
		return DateRow{}, ErrNotFound
	}
	if err != nil {
		return DateRow{}, fmt.Errorf("query date: %w", err)
	}
	return d, nil
}

func insertDate(ctx context.Context, tx *sql.Tx, date models.Date) (DateRow, error) {
	d := DateRow{DateID: uuid.NewString(), Date: date}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO dates (date_id, date)
		VALUES ($1, $2)
	`, d.DateID, d.Date)
	if err != nil {
		return DateRow{}, fmt.Errorf("insert date: %w", err)
	}
	return d, nil
}

func insertGame(ctx context.Context, tx *sql.Tx, game GameRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO games (game_id, date_id, game_no, score_str)
		VALUES ($1, $2, $3, $4)
	`, game.GameID, game.DateID, game.GameNo, game.ScoreStr)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func countGamesForDate(ctx context.Context, q querier, dateID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM games
		WHERE date_id = $1
	`, dateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}
