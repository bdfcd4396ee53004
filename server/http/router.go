package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"match-service/internal/config"
	matchHnd "match-service/internal/match/handler"
	"match-service/internal/middleware"
	"match-service/server/http/handlers"
)

func NewRouter(cfg config.Config, weights matchHnd.WeightsSource, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> rate limit -> body limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateBurst))
		r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

		r.Post("/match", matchHnd.Match(cfg, weights, logger))
		r.Post("/score", matchHnd.Score(weights, logger))
		r.Get("/weights", handlers.Weights(weights))
	})

	return r
}
