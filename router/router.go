// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/danielhkuo/scorekeeper/cliparse"
	"github.com/danielhkuo/scorekeeper/db"
	"github.com/danielhkuo/scorekeeper/handlers"
	"github.com/danielhkuo/scorekeeper/metrics"
	"github.com/danielhkuo/scorekeeper/middleware"
)

func New(store db.Store, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(store)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthchecker", gameHandler.Healthcheck)
		r.Get("/games", gameHandler.ListRecords)
		r.Post("/games/", gameHandler.CreateGame)
		r.Get("/games/{game_id}", gameHandler.GetGame)
		r.Patch("/games/{game_id}", gameHandler.UpdateGame)
		r.Delete("/games/{game_id}", gameHandler.DeleteGame)
	})

	// Prometheus scrape endpoint
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("scorekeeper API v1"))
	})

	return r
}
