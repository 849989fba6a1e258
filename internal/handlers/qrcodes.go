package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dionis36/qrstudio-sub001/internal/services"
	"github.com/dionis36/qrstudio-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

type createQrRequest struct {
	Name    string          `json:"name"`
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
	Design  json.RawMessage `json:"design"`
}

type updateQrRequest struct {
	Name     *string         `json:"name"`
	Payload  json.RawMessage `json:"payload"`
	Design   json.RawMessage `json:"design"`
	IsActive *bool           `json:"is_active"`
}

func (h *Handler) CreateQrCode(c *gin.Context) {
	var req createQrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	qr, err := h.qrService.Create(ownerID(c), services.CreateQrDTO{
		Name:      req.Name,
		Type:      req.Type,
		Payload:   string(req.Payload),
		Design:    string(req.Design),
		IPAddress: c.ClientIP(),
	})
	if errors.Is(err, services.ErrValidation) {
		response.BadRequest(c, "Invalid QR code")
		return
	}
	if err != nil {
		h.logger.Error("Failed to create qr code", "error", err)
		response.InternalError(c, "Internal server error")
		return
	}

	response.Created(c, qr)
}

func (h *Handler) ListQrCodes(c *gin.Context) {
	qrs, err := h.qrService.List(ownerID(c))
	if err != nil {
		h.logger.Error("Failed to list qr codes", "error", err)
		response.InternalError(c, "Internal server error")
		return
	}
	response.OK(c, qrs)
}

func (h *Handler) GetQrCode(c *gin.Context) {
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
		h.logger.Error("Failed to get qr code", "id", id, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}
	response.OK(c, qr)
}

func (h *Handler) UpdateQrCode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateQrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto := services.UpdateQrDTO{
		Name:      req.Name,
		IsActive:  req.IsActive,
		IPAddress: c.ClientIP(),
	}
	if req.Payload != nil {
		payload := string(req.Payload)
		dto.Payload = &payload
	}
	if req.Design != nil {
		design := string(req.Design)
		dto.Design = &design
	}

	qr, err := h.qrService.Update(ownerID(c), id, dto)
	if errors.Is(err, services.ErrNotFound) {
		response.NotFound(c, "QR code not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to update qr code", "id", id, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}
	response.OK(c, qr)
}

func (h *Handler) DeleteQrCode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.qrService.Delete(ownerID(c), id, c.ClientIP())
	if errors.Is(err, services.ErrNotFound) {
		response.NotFound(c, "QR code not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete qr code", "id", id, "error", err)
		response.InternalError(c, "Internal server error")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
