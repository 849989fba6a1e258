package handlers

import (
	"net/http"

	"github.com/dionis36/qrstudio-sub001/internal/services"
	"github.com/dionis36/qrstudio-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

// ResolveShortcode handles the public redirect path. Scan recording is
// triggered inside the resolver and never awaited here; the 302 goes out
// regardless of what happens to the analytics write.
func (h *Handler) ResolveShortcode(c *gin.Context) {
	shortcode := c.Param("shortcode")

	res, err := h.resolver.Resolve(c.Request.Context(), shortcode, services.ScanEvent{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if err != nil {
		h.logger.Error("Redirect resolution failed", "shortcode", shortcode, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}

	switch res.Outcome {
	case services.OutcomeNotFound:
		response.NotFound(c, "QR code not found")
	default:
		// Instant, landing and inactive all 302; they differ only in target
		// and classification.
		c.Redirect(http.StatusFound, res.Location)
	}
}
