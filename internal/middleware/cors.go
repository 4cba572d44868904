package middleware

import (
	"net/http"

	"repair-backend/internal/config"

	"github.com/rs/cors"
)

// NewCORS builds the CORS layer for the staff dashboard and the public
// tracking page, both served from origins listed in config.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler
}
