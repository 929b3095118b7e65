// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the scorekeeper API.

# Route Registration

New creates a configured chi router with all endpoints:

	handler := router.New(store, cfg)

# Endpoints

API routes (all under /api):

	GET    /api/healthchecker   - Health check
	GET    /api/games           - List dates with their games (page, limit)
	POST   /api/games/          - Create game (note trailing slash)
	GET    /api/games/{game_id} - Get one game with its date
	PATCH  /api/games/{game_id} - Update a game's date/score
	DELETE /api/games/{game_id} - Delete game (cascades empty dates)

Operational routes:

	GET /metrics - Prometheus scrape endpoint
	GET /        - Service banner

# Middleware Stack

In order: RequestID, RealIP, request logging (slog), Recoverer, 30s timeout,
Prometheus metrics, CORS (origins from config).

# Handler Initialization

The router creates the handler with dependency injection:

	gameHandler := handlers.NewGameHandler(store)

The store is the db.Store interface, so tests mount the router over the
in-memory fake from testutil.
*/
package router
