// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Envelope status constants
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Request types

type CreateGameRequest struct {
	Date     Date   `json:"date"`
	ScoreStr string `json:"score_str"`
}

// All fields optional; only present fields are applied.
type UpdateGameRequest struct {
	Date     *Date   `json:"date,omitempty"`
	ScoreStr *string `json:"score_str,omitempty"`
}

// Response types

type GameInfo struct {
	GameID   string `json:"game_id"`
	GameNo   int    `json:"game_no"`
	ScoreStr string `json:"score_str"`
}

// Game is GameInfo plus its owning date, flattened into one JSON object.
type Game struct {
	DateID   string `json:"date_id"`
	Date     Date   `json:"date"`
	GameID   string `json:"game_id"`
	GameNo   int    `json:"game_no"`
	ScoreStr string `json:"score_str"`
}

type DateRecord struct {
	DateID string     `json:"date_id"`
	Date   Date       `json:"date"`
	Games  []GameInfo `json:"games"`
}

type GameResponse struct {
	Status string `json:"status"`
	Data   Game   `json:"data"`
}

type RecordResponse struct {
	Status  string       `json:"status"`
	Results int          `json:"results"`
	Dates   []DateRecord `json:"dates"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
