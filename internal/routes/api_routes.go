package routes

import (
	"dream-analyzer/backend/internal/api"
	"dream-analyzer/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {
	cfg := deps.Config
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	initDataAuth := middleware.InitDataAuth(cfg.BotToken, cfg.InitDataMaxAge)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)

		// Rewards: configuration is checked before the session
		v1.Group(func(rewards chi.Router) {
			rewards.Use(middleware.RequireSettings(cfg.MissingTelegramSettings))
			rewards.Use(initDataAuth)
			rewards.Post("/rewards/claim-channel-token", handlers.ClaimChannelReward())
		})

		// Mini-app
		v1.Group(func(app chi.Router) {
			app.Use(initDataAuth)
			app.Get("/user/profile", handlers.GetUserProfile())
			app.Get("/dreams", handlers.GetDreamHistory())
			app.Post("/payments/invoice", handlers.CreateInvoice())
		})
	})
}
