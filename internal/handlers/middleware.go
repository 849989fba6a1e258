package handlers

import (
	"net/http"

	"github.com/dionis36/qrstudio-sub001/internal/services"
	"github.com/dionis36/qrstudio-sub001/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityRequired trusts the configured upstream header as an authenticated
// owner identifier. The service never manufactures or defaults an identity;
// a missing header on an owner-scoped route is a 401.
func (h *Handler) IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetHeader(h.cfg.AuthHeader)
		if ownerID == "" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		c.Set("owner_id", ownerID)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	if val, exists := c.Get("owner_id"); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

func (h *Handler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
