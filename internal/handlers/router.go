package handlers

import (
	"strings"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(h.RequestIDMiddleware())

	corsCfg := cors.Config{
		AllowOrigins:     strings.Split(h.cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", h.cfg.AuthHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))

	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public scan beacon
	r.POST("/analytics/scan/:shortcode", h.RecordScan)

	// Owner-scoped routes; identity arrives via the trusted upstream header
	analytics := r.Group("/analytics")
	analytics.Use(h.IdentityRequired())
	{
		analytics.GET("/qrcodes/:id", h.GetQrAnalytics)
		analytics.GET("/recent-scans", h.GetRecentScans)
	}

	api := r.Group("/api/v1")
	api.Use(h.IdentityRequired())
	{
		api.POST("/qrcodes", h.CreateQrCode)
		api.GET("/qrcodes", h.ListQrCodes)
		api.GET("/qrcodes/:id", h.GetQrCode)
		api.PUT("/qrcodes/:id", h.UpdateQrCode)
		api.DELETE("/qrcodes/:id", h.DeleteQrCode)
		api.GET("/qrcodes/:id/image", h.GetQrCodeImage)
	}

	// Catch-all public redirect
	r.GET("/:shortcode", h.ResolveShortcode)

	return r
}
