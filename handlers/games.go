// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/danielhkuo/scorekeeper/db"
	"github.com/danielhkuo/scorekeeper/middleware"
	"github.com/danielhkuo/scorekeeper/models"
)

// Listing defaults when page/limit are absent or malformed.
const (
	defaultPage  = 1
	defaultLimit = 12
)

const healthMessage = "Built API with Go, PostgreSQL, and chi"

type GameHandler struct {
	store db.Store
}

func NewGameHandler(store db.Store) *GameHandler {
	return &GameHandler{store: store}
}

// Healthcheck handles GET /api/healthchecker
func (h *GameHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:  models.StatusSuccess,
		Message: healthMessage,
	})
}

// ListRecords handles GET /api/games
// Returns dates ordered newest first, each with its games in game_no order.
func (h *GameHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)
	offset := (page - 1) * limit

	dates, err := h.store.ListDates(r.Context(), limit, offset)
	if err != nil {
		slog.Error("failed to query dates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while querying dates")
		return
	}

	records := make([]models.DateRecord, 0, len(dates))
	for _, d := range dates {
		games, err := h.store.ListGamesForDate(r.Context(), d.DateID)
		if err != nil {
			slog.Error("failed to query games", "error", err, "date_id", d.DateID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while querying games on given date")
			return
		}

		infos := make([]models.GameInfo, 0, len(games))
		for _, g := range games {
			infos = append(infos, models.GameInfo{
				GameID:   g.GameID,
				GameNo:   g.GameNo,
				ScoreStr: g.ScoreStr,
			})
		}

		records = append(records, models.DateRecord{
			DateID: d.DateID,
			Date:   d.Date,
			Games:  infos,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.RecordResponse{
		Status:  models.StatusSuccess,
		Results: len(records),
		Dates:   records,
	})
}

// GetGame handles GET /api/games/{game_id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathGameID(w, r)
	if !ok {
		return
	}

	game, err := h.store.GetGameByID(r.Context(), gameID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Game with ID: "+gameID+" not found")
		return
	}
	if err != nil {
		slog.Error("failed to query game", "error", err, "game_id", gameID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while querying for game with given game_id")
		return
	}

	date, err := h.store.GetDateByID(r.Context(), game.DateID)
	if err != nil {
		slog.Error("failed to query date", "error", err, "date_id", game.DateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while querying for date with given date_id")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GameResponse{
		Status: models.StatusSuccess,
		Data:   composeGame(game, date),
	})
}

// CreateGame handles POST /api/games/
// Creates the date on first use and assigns game_no = count+1.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Date.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date is required")
		return
	}
	if req.ScoreStr == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "score_str is required")
		return
	}

	game, date, err := h.store.CreateGame(r.Context(), req.Date, req.ScoreStr)
	if err != nil {
		slog.Error("failed to create game", "error", err, "date", req.Date.String())
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while adding new game")
		return
	}

	slog.Info("game created", "game_id", game.GameID, "date", date.Date.String(), "game_no", game.GameNo)

	middleware.JSONResponse(w, http.StatusOK, models.GameResponse{
		Status: models.StatusSuccess,
		Data:   composeGame(game, date),
	})
}

// UpdateGame handles PATCH /api/games/{game_id}
// Only fields present in the body are applied.
func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathGameID(w, r)
	if !ok {
		return
	}

	var req models.UpdateGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	game, date, err := h.store.UpdateGame(r.Context(), gameID, req.Date, req.ScoreStr)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Game with ID: "+gameID+" not found")
		return
	}
	if err != nil {
		slog.Error("failed to update game", "error", err, "game_id", gameID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while updating game")
		return
	}

	slog.Info("game updated", "game_id", game.GameID, "date", date.Date.String())

	middleware.JSONResponse(w, http.StatusOK, models.GameResponse{
		Status: models.StatusSuccess,
		Data:   composeGame(game, date),
	})
}

// DeleteGame handles DELETE /api/games/{game_id}
// Deletes the date as well when its last game is removed.
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathGameID(w, r)
	if !ok {
		return
	}

	err := h.store.DeleteGame(r.Context(), gameID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Game with ID: "+gameID+" not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete game", "error", err, "game_id", gameID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error occured while querying for game deletion")
		return
	}

	slog.Info("game deleted", "game_id", gameID)

	w.WriteHeader(http.StatusNoContent)
}

// pathGameID extracts and validates the game_id path parameter, writing a
// 400 response when it is not a UUID.
func pathGameID(w http.ResponseWriter, r *http.Request) (string, bool) {
	gameID := chi.URLParam(r, "game_id")
	if _, err := uuid.Parse(gameID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "game_id must be a valid UUID")
		return "", false
	}
	return gameID, true
}

// queryInt reads a positive integer query parameter, falling back to def on
// absent, malformed, or non-positive values.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func composeGame(game db.GameRow, date db.DateRow) models.Game {
	return models.Game{
		DateID:   date.DateID,
		Date:     date.Date,
		GameID:   game.GameID,
		GameNo:   game.GameNo,
		ScoreStr: game.ScoreStr,
	}
}
