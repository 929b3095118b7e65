// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateGameRequest: date, score_str (both required)
  - UpdateGameRequest: date, score_str (both optional pointers)

# Response Types

Every response carries a status envelope:

  - GameResponse: status, data (one Game)
  - RecordResponse: status, results, dates ([]DateRecord)
  - HealthResponse: status, message
  - ErrorResponse: status ("error" or "fail"), message

Payload shapes:

  - GameInfo: game_id, game_no, score_str
  - Game: GameInfo plus date_id and date, flattened into one JSON object
  - DateRecord: date_id, date, games (ordered by game_no ascending)

# Date Type

Date is a civil calendar date ("YYYY-MM-DD" on the wire, DATE column in SQL)
wrapping time.Time with JSON and database conversions:

	d, err := models.ParseDate("2024-01-01")
	d.String() // "2024-01-01"

# Status Constants

	StatusSuccess = "success"
	StatusFail    = "fail"  // client-addressable conditions (404, 400)
	StatusError   = "error" // server-side failures (500)
*/
package models
