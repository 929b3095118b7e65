// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/scorekeeper/models"
	"github.com/danielhkuo/scorekeeper/testutil"
)

// assertSameGame compares every Game field, using the wire form for dates.
func assertSameGame(t *testing.T, got, want models.Game) {
	t.Helper()
	if got.GameID != want.GameID || got.DateID != want.DateID ||
		got.GameNo != want.GameNo || got.ScoreStr != want.ScoreStr ||
		got.Date.String() != want.Date.String() {
		t.Errorf("game mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// withGameID attaches a chi route context so chi.URLParam resolves game_id
// without mounting a full router.
func withGameID(req *http.Request, gameID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("game_id", gameID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func mustCreate(t *testing.T, store *testutil.FakeStore, day, score string) models.Game {
	t.Helper()

	date, err := models.ParseDate(day)
	if err != nil {
		t.Fatalf("bad test date %q: %v", day, err)
	}
	game, dateRow, err := store.CreateGame(context.Background(), date, score)
	if err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}
	return models.Game{
		DateID:   dateRow.DateID,
		Date:     dateRow.Date,
		GameID:   game.GameID,
		GameNo:   game.GameNo,
		ScoreStr: game.ScoreStr,
	}
}

func TestHealthcheck(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	req := testutil.MakeRequest("GET", "/api/healthchecker", nil, nil)
	w := httptest.NewRecorder()
	handler.Healthcheck(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusSuccess {
		t.Errorf("expected status success, got %q", resp.Status)
	}
	if resp.Message == "" {
		t.Error("expected a health message")
	}
}

func TestListRecords(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	mustCreate(t, store, "2024-01-01", "3-2")
	mustCreate(t, store, "2024-01-01", "1-4")
	mustCreate(t, store, "2024-02-15", "7-0")

	req := testutil.MakeRequest("GET", "/api/games", nil, nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RecordResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != models.StatusSuccess {
		t.Errorf("expected status success, got %q", resp.Status)
	}
	if resp.Results != 2 {
		t.Fatalf("expected 2 date records, got %d", resp.Results)
	}

	// Dates ordered newest first
	if resp.Dates[0].Date.String() != "2024-02-15" {
		t.Errorf("expected newest date first, got %s", resp.Dates[0].Date)
	}
	if resp.Dates[1].Date.String() != "2024-01-01" {
		t.Errorf("expected older date second, got %s", resp.Dates[1].Date)
	}

	// Games ordered by game_no ascending
	games := resp.Dates[1].Games
	if len(games) != 2 {
		t.Fatalf("expected 2 games on 2024-01-01, got %d", len(games))
	}
	if games[0].GameNo != 1 || games[1].GameNo != 2 {
		t.Errorf("expected game_no order [1 2], got [%d %d]", games[0].GameNo, games[1].GameNo)
	}
	if games[0].ScoreStr != "3-2" || games[1].ScoreStr != "1-4" {
		t.Errorf("unexpected scores: %q, %q", games[0].ScoreStr, games[1].ScoreStr)
	}
}

func TestListRecords_Pagination(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	mustCreate(t, store, "2024-01-01", "3-2")
	mustCreate(t, store, "2024-01-02", "1-0")
	mustCreate(t, store, "2024-01-03", "2-2")

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"limit one", "?limit=1", 1, "2024-01-03"},
		{"second page", "?page=2&limit=1", 1, "2024-01-02"},
		{"page past end", "?page=5&limit=2", 0, ""},
		{"malformed falls back to defaults", "?page=abc&limit=-3", 3, "2024-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/api/games"+tt.query, nil, nil)
			w := httptest.NewRecorder()
			handler.ListRecords(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.RecordResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Results != tt.wantCount {
				t.Fatalf("expected %d results, got %d", tt.wantCount, resp.Results)
			}
			if tt.wantCount > 0 && resp.Dates[0].Date.String() != tt.wantFirst {
				t.Errorf("expected first date %s, got %s", tt.wantFirst, resp.Dates[0].Date)
			}
		})
	}
}

func TestListRecords_Empty(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	req := testutil.MakeRequest("GET", "/api/games", nil, nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RecordResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Results != 0 {
		t.Errorf("expected 0 results, got %d", resp.Results)
	}
	if resp.Dates == nil {
		t.Error("expected an empty dates array, not null")
	}
}

func TestListRecords_StoreErrors(t *testing.T) {
	t.Run("dates query fails", func(t *testing.T) {
		store := testutil.NewFakeStore()
		store.ListDatesErr = errors.New("connection refused")
		handler := NewGameHandler(store)

		req := testutil.MakeRequest("GET", "/api/games", nil, nil)
		w := httptest.NewRecorder()
		handler.ListRecords(w, req)

		testutil.AssertStatus(t, w, http.StatusInternalServerError)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != models.StatusError {
			t.Errorf("expected status error, got %q", resp.Status)
		}
		if resp.Message != "Error occured while querying dates" {
			t.Errorf("unexpected message: %q", resp.Message)
		}
	})

	t.Run("games query fails", func(t *testing.T) {
		store := testutil.NewFakeStore()
		handler := NewGameHandler(store)
		mustCreate(t, store, "2024-01-01", "3-2")
		store.ListGamesErr = errors.New("connection refused")

		req := testutil.MakeRequest("GET", "/api/games", nil, nil)
		w := httptest.NewRecorder()
		handler.ListRecords(w, req)

		testutil.AssertStatus(t, w, http.StatusInternalServerError)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "Error occured while querying games on given date" {
			t.Errorf("unexpected message: %q", resp.Message)
		}
	})
}

func TestGetGame(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	created := mustCreate(t, store, "2024-01-01", "3-2")

	req := withGameID(testutil.MakeRequest("GET", "/api/games/"+created.GameID, nil, nil), created.GameID)
	w := httptest.NewRecorder()
	handler.GetGame(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GameResponse
	testutil.AssertJSON(t, w, &resp)

	// Round-trip: every field matches what creation returned
	assertSameGame(t, resp.Data, created)
}

func TestGetGame_NotFound(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	missing := "6f1f2a0a-9b2e-4b6d-8f3a-2f9d2f5f3c11"
	req := withGameID(testutil.MakeRequest("GET", "/api/games/"+missing, nil, nil), missing)
	w := httptest.NewRecorder()
	handler.GetGame(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusFail {
		t.Errorf("expected status fail, got %q", resp.Status)
	}
	if resp.Message != "Game with ID: "+missing+" not found" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestGetGame_InvalidID(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	req := withGameID(testutil.MakeRequest("GET", "/api/games/not-a-uuid", nil, nil), "not-a-uuid")
	w := httptest.NewRecorder()
	handler.GetGame(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusFail {
		t.Errorf("expected status fail, got %q", resp.Status)
	}
}

func TestGetGame_StoreError(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)
	created := mustCreate(t, store, "2024-01-01", "3-2")
	store.GetGameErr = errors.New("connection refused")

	req := withGameID(testutil.MakeRequest("GET", "/api/games/"+created.GameID, nil, nil), created.GameID)
	w := httptest.NewRecorder()
	handler.GetGame(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusError {
		t.Errorf("expected status error, got %q", resp.Status)
	}
}

func TestCreateGame(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	body := map[string]string{"date": "2024-01-01", "score_str": "3-2"}
	req := testutil.MakeRequest("POST", "/api/games/", body, nil)
	w := httptest.NewRecorder()
	handler.CreateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GameResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != models.StatusSuccess {
		t.Errorf("expected status success, got %q", resp.Status)
	}
	if resp.Data.GameNo != 1 {
		t.Errorf("expected game_no 1 for first game, got %d", resp.Data.GameNo)
	}
	if resp.Data.Date.String() != "2024-01-01" {
		t.Errorf("expected date 2024-01-01, got %s", resp.Data.Date)
	}
	if resp.Data.ScoreStr != "3-2" {
		t.Errorf("expected score 3-2, got %q", resp.Data.ScoreStr)
	}
	if resp.Data.GameID == "" || resp.Data.DateID == "" {
		t.Error("expected generated IDs")
	}

	// Second game on the same date increments game_no
	req = testutil.MakeRequest("POST", "/api/games/", map[string]string{"date": "2024-01-01", "score_str": "0-1"}, nil)
	w = httptest.NewRecorder()
	handler.CreateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var second models.GameResponse
	testutil.AssertJSON(t, w, &second)
	if second.Data.GameNo != 2 {
		t.Errorf("expected game_no 2, got %d", second.Data.GameNo)
	}
	if second.Data.DateID != resp.Data.DateID {
		t.Error("expected both games to share a date record")
	}
}

func TestCreateGame_GameNoStrictlyIncreasing(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	for i := 1; i <= 5; i++ {
		body := map[string]string{"date": "2024-03-03", "score_str": "1-1"}
		req := testutil.MakeRequest("POST", "/api/games/", body, nil)
		w := httptest.NewRecorder()
		handler.CreateGame(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.GameResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.GameNo != i {
			t.Fatalf("create %d: expected game_no %d, got %d", i, i, resp.Data.GameNo)
		}
	}
}

func TestCreateGame_Validation(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing date", map[string]string{"score_str": "3-2"}},
		{"missing score_str", map[string]string{"date": "2024-01-01"}},
		{"malformed date", map[string]string{"date": "01/01/2024", "score_str": "3-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/games/", tt.body, nil)
			w := httptest.NewRecorder()
			handler.CreateGame(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Status != models.StatusFail {
				t.Errorf("expected status fail, got %q", resp.Status)
			}
		})
	}
}

func TestCreateGame_StoreError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.CreateErr = errors.New("connection refused")
	handler := NewGameHandler(store)

	body := map[string]string{"date": "2024-01-01", "score_str": "3-2"}
	req := testutil.MakeRequest("POST", "/api/games/", body, nil)
	w := httptest.NewRecorder()
	handler.CreateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Error occured while adding new game" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestUpdateGame_Score(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)
	created := mustCreate(t, store, "2024-01-01", "3-2")

	body := map[string]string{"score_str": "5-5"}
	req := withGameID(testutil.MakeRequest("PATCH", "/api/games/"+created.GameID, body, nil), created.GameID)
	w := httptest.NewRecorder()
	handler.UpdateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GameResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Data.ScoreStr != "5-5" {
		t.Errorf("expected updated score 5-5, got %q", resp.Data.ScoreStr)
	}
	if resp.Data.Date.String() != "2024-01-01" {
		t.Errorf("date should be unchanged, got %s", resp.Data.Date)
	}
	if resp.Data.GameNo != created.GameNo {
		t.Errorf("game_no should be unchanged, got %d", resp.Data.GameNo)
	}
}

func TestUpdateGame_MoveToNewDate(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)
	created := mustCreate(t, store, "2024-01-01", "3-2")
	mustCreate(t, store, "2024-01-01", "0-0")

	body := map[string]string{"date": "2024-06-30"}
	req := withGameID(testutil.MakeRequest("PATCH", "/api/games/"+created.GameID, body, nil), created.GameID)
	w := httptest.NewRecorder()
	handler.UpdateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GameResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Data.Date.String() != "2024-06-30" {
		t.Errorf("expected date 2024-06-30, got %s", resp.Data.Date)
	}
	if resp.Data.DateID == created.DateID {
		t.Error("expected the game to move to a different date record")
	}
	// game_no is assigned once and survives the move
	if resp.Data.GameNo != created.GameNo {
		t.Errorf("expected game_no %d preserved, got %d", created.GameNo, resp.Data.GameNo)
	}
	if resp.Data.ScoreStr != "3-2" {
		t.Errorf("score should be unchanged, got %q", resp.Data.ScoreStr)
	}
}

func TestUpdateGame_NotFound(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	missing := "6f1f2a0a-9b2e-4b6d-8f3a-2f9d2f5f3c11"
	body := map[string]string{"score_str": "5-5"}
	req := withGameID(testutil.MakeRequest("PATCH", "/api/games/"+missing, body, nil), missing)
	w := httptest.NewRecorder()
	handler.UpdateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusFail {
		t.Errorf("expected status fail, got %q", resp.Status)
	}
	if resp.Message != "Game with ID: "+missing+" not found" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestUpdateGame_EmptyBodyIsNoOp(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)
	created := mustCreate(t, store, "2024-01-01", "3-2")

	req := withGameID(testutil.MakeRequest("PATCH", "/api/games/"+created.GameID, map[string]string{}, nil), created.GameID)
	w := httptest.NewRecorder()
	handler.UpdateGame(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GameResponse
	testutil.AssertJSON(t, w, &resp)
	assertSameGame(t, resp.Data, created)
}

func TestDeleteGame(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	first := mustCreate(t, store, "2024-01-01", "3-2")
	mustCreate(t, store, "2024-01-01", "1-4")

	req := withGameID(testutil.MakeRequest("DELETE", "/api/games/"+first.GameID, nil, nil), first.GameID)
	w := httptest.NewRecorder()
	handler.DeleteGame(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}

	// Date survives with the remaining game; its game_no gap is preserved
	listReq := testutil.MakeRequest("GET", "/api/games", nil, nil)
	listW := httptest.NewRecorder()
	handler.ListRecords(listW, listReq)

	var resp models.RecordResponse
	testutil.AssertJSON(t, listW, &resp)
	if resp.Results != 1 {
		t.Fatalf("expected the date to survive, got %d records", resp.Results)
	}
	if len(resp.Dates[0].Games) != 1 {
		t.Fatalf("expected 1 remaining game, got %d", len(resp.Dates[0].Games))
	}
	if resp.Dates[0].Games[0].GameNo != 2 {
		t.Errorf("expected surviving game to keep game_no 2, got %d", resp.Dates[0].Games[0].GameNo)
	}
}

func TestDeleteGame_CascadesEmptyDate(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)

	only := mustCreate(t, store, "2024-01-01", "3-2")

	req := withGameID(testutil.MakeRequest("DELETE", "/api/games/"+only.GameID, nil, nil), only.GameID)
	w := httptest.NewRecorder()
	handler.DeleteGame(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	if store.DateCount() != 0 {
		t.Errorf("expected the emptied date to be deleted, %d dates remain", store.DateCount())
	}
}

func TestDeleteGame_NotFound(t *testing.T) {
	handler := NewGameHandler(testutil.NewFakeStore())

	missing := "6f1f2a0a-9b2e-4b6d-8f3a-2f9d2f5f3c11"
	req := withGameID(testutil.MakeRequest("DELETE", "/api/games/"+missing, nil, nil), missing)
	w := httptest.NewRecorder()
	handler.DeleteGame(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusFail {
		t.Errorf("expected status fail, got %q", resp.Status)
	}
}

func TestDeleteGame_StoreError(t *testing.T) {
	store := testutil.NewFakeStore()
	handler := NewGameHandler(store)
	created := mustCreate(t, store, "2024-01-01", "3-2")
	store.DeleteErr = errors.New("connection refused")

	req := withGameID(testutil.MakeRequest("DELETE", "/api/games/"+created.GameID, nil, nil), created.GameID)
	w := httptest.NewRecorder()
	handler.DeleteGame(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusError {
		t.Errorf("expected status error, got %q", resp.Status)
	}
}
