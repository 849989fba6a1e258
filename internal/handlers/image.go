package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dionis36/qrstudio-sub001/internal/services"
	"github.com/dionis36/qrstudio-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetQrCodeImage renders the scannable image for an owned QR code. The
// encoded content is always the public redirect URL for the shortcode, so
// payload edits never require reprinting the code.
func (h *Handler) GetQrCodeImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	qr, err := h.qrService.Get(ownerID(c), id)
	if errors.Is(err, services.ErrNotFound) {
		response.NotFound(c, "QR code not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to get qr code for image", "id", id, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}

	content := h.cfg.PublicBaseURL + "/" + qr.Shortcode

	if c.Query("format") == "svg" {
		svg, err := h.qrImageService.GenerateSVG(content)
		if err != nil {
			response.InternalError(c, "Failed to generate image")
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := h.qrImageService.GeneratePNG(content, size)
	if err != nil {
		response.InternalError(c, "Failed to generate image")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
