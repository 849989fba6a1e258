package handlers

import (
	"errors"

	"github.com/dionis36/qrstudio-sub001/internal/services"
	"github.com/dionis36/qrstudio-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

type scanRequest struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Device  string `json:"device"`
	OS      string `json:"os"`
	Browser string `json:"browser"`
}

// RecordScan is the public beacon endpoint for scan sources that are not the
// redirect path (e.g. third-party scanners reporting a hit). Unlike the
// redirect path it records synchronously and reports unknown shortcodes.
func (h *Handler) RecordScan(c *gin.Context) {
	shortcode := c.Param("shortcode")

	var req scanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Malformed request body")
			return
		}
	}

	scan, err := h.scanService.Record(shortcode, services.ScanEvent{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		Country:   req.Country,
		City:      req.City,
		Device:    req.Device,
		OS:        req.OS,
		Browser:   req.Browser,
	})
	if errors.Is(err, services.ErrNotFound) {
		response.BadRequest(c, "Unknown shortcode")
		return
	}
	if errors.Is(err, services.ErrInactive) {
		response.BadRequest(c, "QR code is inactive")
		return
	}
	if err != nil {
		h.logger.Error("Failed to record scan", "shortcode", shortcode, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}

	response.Created(c, gin.H{"id": scan.ID})
}
