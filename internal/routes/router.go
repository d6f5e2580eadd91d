package routes

import (
	"net/http"
	"time"

	"dream-analyzer/backend/internal/api"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constants.InitDataHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handlers := api.NewHandlers(deps, upSince)

	// health check
	r.Get("/healthCheck", handlers.HealthCheck())

	RegisterAPIRoutes(r, deps, handlers)

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
