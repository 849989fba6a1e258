package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/services"
	"github.com/dionis36/qrstudio-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// GetQrAnalytics serves the dashboard read for one QR code. Date bounds are
// calendar dates; endDate is inclusive.
func (h *Handler) GetQrAnalytics(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var from, to *time.Time
	if raw := c.Query("startDate"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			response.BadRequest(c, "Invalid startDate")
			return
		}
		from = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			response.BadRequest(c, "Invalid endDate")
			return
		}
		end := t.Add(24 * time.Hour)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		response.BadRequest(c, "endDate before startDate")
		return
	}

	report, err := h.analyticsService.GetQrAnalytics(ownerID(c), id, from, to)
	if errors.Is(err, services.ErrNotFound) {
		response.NotFound(c, "QR code not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to aggregate analytics", "id", id, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}

	response.OK(c, report)
}

func (h *Handler) GetRecentScans(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	scans, err := h.analyticsService.GetRecentScans(ownerID(c), limit)
	if err != nil {
		h.logger.Error("Failed to fetch recent scans", "error", err)
		response.InternalError(c, "Internal server error")
		return
	}

	response.OK(c, scans)
}
