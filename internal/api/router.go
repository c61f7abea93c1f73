package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/tracking-backend-go/internal/config"
	"github.com/fleetops/tracking-backend-go/internal/handler"
	"github.com/fleetops/tracking-backend-go/internal/middleware"
)

// SetupRouter wires middleware and the tracking routes.
func SetupRouter(cfg *config.Config, trackingHandler *handler.TrackingHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fleet Tracking API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	if cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	}

	tracking := api.Group("/tracking")
	trackingHandler.Register(tracking)

	return r
}
