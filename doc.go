// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the scorekeeper API server.

Scorekeeper is a small record-keeping REST API: it tracks scored games
grouped under the calendar date they were played on. Dates are created
implicitly when the first game of a day is submitted and removed again when
their last game is deleted. Each game carries a per-date sequence number
(game_no) assigned at creation time.

# Starting the Server

The server requires a PostgreSQL connection string via environment variable,
a .env file, or a CLI flag:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - CORS_ORIGINS (-cors): Allowed origins (default: http://localhost:3000)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers for the game endpoints
  - router: Route definitions using chi, mounted under /api
  - middleware: Request logging and JSON envelope helpers
  - models: Request/response types and the civil Date type
  - db: Schema creation and the Store interface with its PostgreSQL
    implementation
  - metrics: Prometheus request instrumentation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
