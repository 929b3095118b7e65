// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the scorekeeper API.

# Handler Type

GameHandler carries the data-access dependency and is created via a
constructor that accepts a db.Store:

	gameHandler := handlers.NewGameHandler(store)

# Endpoints

All routes are mounted under /api by the router:

	GET    /api/healthchecker   → Healthcheck
	GET    /api/games           → ListRecords (page, limit query params)
	GET    /api/games/{game_id} → GetGame
	POST   /api/games/          → CreateGame
	PATCH  /api/games/{game_id} → UpdateGame
	DELETE /api/games/{game_id} → DeleteGame

# Responses

Success responses wrap their payload in a {status: "success", ...} envelope.
Failures produce {status, message}: "fail" for 400/404, "error" for 500.
A missing game is a 404 for GET, PATCH, and DELETE alike. DeleteGame returns
204 with an empty body on success.

# Create Semantics

CreateGame looks up the date by value and creates it on first use, then
assigns game_no as the count of existing games on that date plus one. The
whole sequence is one transaction inside the store, so concurrent creates on
the same date cannot collide.

# Update Semantics

UpdateGame applies only the fields present in the PATCH body. Supplying a
date moves the game to that date (creating it if needed) while keeping its
original game_no; supplying score_str rewrites the score.
*/
package handlers
