package middleware

import (
	"log/slog"

	"resource-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware builds the browser access policy for the booking API.
// Allowed origins come from deployment config; the booking frontend talks
// to the API with credentials, so origins must be listed explicitly.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	slog.Info("cors policy loaded",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", cfg.AllowCredentials)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
