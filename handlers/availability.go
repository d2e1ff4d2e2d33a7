package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"detailify/services/availability"
	"detailify/utils"
)

// AvailabilityHandler serves the public booking-widget availability endpoints.
type AvailabilityHandler struct {
	Engine *availability.Engine
}

func NewAvailabilityHandler(engine *availability.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// GetTimeSlotsHandler returns the slot grid for a tenant, date, and service.
// GET /api/public/:tenantID/slots?date=2025-06-10&service=Basic+Wash
func (h *AvailabilityHandler) GetTimeSlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	tenantID := c.Param("tenantID")
	date := c.Query("date")
	service := c.Query("service")

	if date == "" || service == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and service query parameters are required"})
		return
	}

	slots, err := h.Engine.AvailableTimeSlots(c.Request.Context(), tenantID, date, service)
	if err != nil {
		logger.Warn("failed to compute time slots",
			zap.String("tenantID", tenantID), zap.String("date", date), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "service": service, "slots": slots})
}

// CheckConflictHandler validates a proposed booking time.
// POST /api/public/:tenantID/check
func (h *AvailabilityHandler) CheckConflictHandler(c *gin.Context) {
	tenantID := c.Param("tenantID")

	var req struct {
		DateTime         time.Time `json:"dateTime" binding:"required"`
		Service          string    `json:"service" binding:"required"`
		ExcludeBookingID string    `json:"excludeBookingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	res, err := h.Engine.CheckBookingConflict(c.Request.Context(), tenantID, req.DateTime, req.Service, req.ExcludeBookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
