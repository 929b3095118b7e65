// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Logger is mounted on the router and records each request after it completes:

	r.Use(middleware.Logger)

Logs method, path, response status, and duration_ms via slog.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Game with ID: abc not found")

ErrorResponse emits the {status, message} envelope: status is "fail" for 4xx
responses and "error" for 5xx responses.

Parse JSON request bodies:

	var req models.CreateGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

CORS is handled by go-chi/cors in the router, not here.
*/
package middleware
