// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/scorekeeper/cliparse"
	"github.com/danielhkuo/scorekeeper/db"
	"github.com/danielhkuo/scorekeeper/models"
)

// FakeStore is a thread-safe in-memory db.Store implementation with the same
// semantics as the PostgreSQL one, so handler tests need no live database.
// Setting one of the *Err fields forces the matching method to fail.
type FakeStore struct {
	mu    sync.Mutex
	dates map[string]db.DateRow
	games map[string]db.GameRow

	ListDatesErr error
	ListGamesErr error
	GetGameErr   error
	GetDateErr   error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		dates: make(map[string]db.DateRow),
		games: make(map[string]db.GameRow),
	}
}

func (s *FakeStore) ListDates(ctx context.Context, limit, offset int) ([]db.DateRow, error) {
	if s.ListDatesErr != nil {
		return nil, s.ListDatesErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := make([]db.DateRow, 0, len(s.dates))
	for _, d := range s.dates {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date.After(dates[j].Date.Time)
	})

	if offset >= len(dates) {
		return []db.DateRow{}, nil
	}
	dates = dates[offset:]
	if limit < len(dates) {
		dates = dates[:limit]
	}
	return dates, nil
}

func (s *FakeStore) ListGamesForDate(ctx context.Context, dateID string) ([]db.GameRow, error) {
	if s.ListGamesErr != nil {
		return nil, s.ListGamesErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	games := []db.GameRow{}
	for _, g := range s.games {
		if g.DateID == dateID {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].GameNo < games[j].GameNo
	})
	return games, nil
}

func (s *FakeStore) GetGameByID(ctx context.Context, gameID string) (db.GameRow, error) {
	if s.GetGameErr != nil {
		return db.GameRow{}, s.GetGameErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return db.GameRow{}, db.ErrNotFound
	}
	return g, nil
}

func (s *FakeStore) GetDateByID(ctx context.Context, dateID string) (db.DateRow, error) {
	if s.GetDateErr != nil {
		return db.DateRow{}, s.GetDateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dates[dateID]
	if !ok {
		return db.DateRow{}, db.ErrNotFound
	}
	return d, nil
}

func (s *FakeStore) GetDateByValue(ctx context.Context, date models.Date) (db.DateRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.findDate(date)
	if !ok {
		return db.DateRow{}, db.ErrNotFound
	}
	return d, nil
}

func (s *FakeStore) CreateGame(ctx context.Context, date models.Date, scoreStr string) (db.GameRow, db.DateRow, error) {
	if s.CreateErr != nil {
		return db.GameRow{}, db.DateRow{}, s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dateRow, ok := s.findDate(date)
	if !ok {
		dateRow = db.DateRow{DateID: uuid.NewString(), Date: date}
		s.dates[dateRow.DateID] = dateRow
	}

	game := db.GameRow{
		GameID:   uuid.NewString(),
		DateID:   dateRow.DateID,
		GameNo:   s.countGames(dateRow.DateID) + 1,
		ScoreStr: scoreStr,
	}
	s.games[game.GameID] = game
	return game, dateRow, nil
}

func (s *FakeStore) UpdateGame(ctx context.Context, gameID string, date *models.Date, scoreStr *string) (db.GameRow, db.DateRow, error) {
	if s.UpdateErr != nil {
		return db.GameRow{}, db.DateRow{}, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return db.GameRow{}, db.DateRow{}, db.ErrNotFound
	}
	dateRow := s.dates[game.DateID]

	if date != nil {
		target, ok := s.findDate(*date)
		if !ok {
			target = db.DateRow{DateID: uuid.NewString(), Date: *date}
			s.dates[target.DateID] = target
		}
		game.DateID = target.DateID
		dateRow = target
	}
	if scoreStr != nil {
		game.ScoreStr = *scoreStr
	}

	s.games[gameID] = game
	return game, dateRow, nil
}

func (s *FakeStore) DeleteGame(ctx context.Context, gameID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return db.ErrNotFound
	}
	delete(s.games, gameID)

	if s.countGames(game.DateID) == 0 {
		delete(s.dates, game.DateID)
	}
	return nil
}

// DateCount reports how many date rows exist, for cascade assertions.
func (s *FakeStore) DateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dates)
}

func (s *FakeStore) findDate(date models.Date) (db.DateRow, bool) {
	for _, d := range s.dates {
		if d.Date.Equal(date.Time) {
			return d, true
		}
	}
	return db.DateRow{}, false
}

func (s *FakeStore) countGames(dateID string) int {
	count := 0
	for _, g := range s.games {
		if g.DateID == dateID {
			count++
		}
	}
	return count
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        8000,
		DatabaseURL: "postgres://test",
		CORSOrigins: []string{"http://localhost:3000"},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
