package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"detailify/models"
	"detailify/services/booking"
	"detailify/utils"
)

// BookingHandler serves the tenant-facing booking endpoints.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// CreateHandler creates a booking for the authenticated tenant.
// POST /api/bookings
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	input.TenantID = tenantID

	b, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		logger.Warn("failed to create booking", zap.String("tenantID", tenantID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// PublicCreateHandler creates an anonymous booking from the public widget.
// POST /api/public/:tenantID/bookings
func (h *BookingHandler) PublicCreateHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	input.TenantID = c.Param("tenantID")
	// Public bookings never reference an existing client record.
	input.ClientID = ""

	b, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// GetHandler returns a single booking.
// GET /api/bookings/:id
func (h *BookingHandler) GetHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	b, err := h.Svc.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListHandler returns the tenant's bookings, optionally bounded by from/to.
// GET /api/bookings?from=2025-06-01T00:00:00Z&to=2025-07-01T00:00:00Z
func (h *BookingHandler) ListHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' timestamp"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' timestamp"})
			return
		}
		to = parsed
	}

	bookings, err := h.Svc.List(c.Request.Context(), tenantID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// RescheduleHandler moves a booking to a new start time.
// PATCH /api/bookings/:id/reschedule
func (h *BookingHandler) RescheduleHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		DateTime time.Time `json:"dateTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	b, err := h.Svc.Reschedule(c.Request.Context(), tenantID, c.Param("id"), req.DateTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelHandler cancels a scheduled booking.
// PATCH /api/bookings/:id/cancel
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	if err := h.Svc.Cancel(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// CompleteHandler marks a scheduled booking as completed.
// PATCH /api/bookings/:id/complete
func (h *BookingHandler) CompleteHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	if err := h.Svc.Complete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking completed"})
}

// DepositIntentHandler creates a Stripe payment intent for a booking deposit.
// POST /api/bookings/:id/deposit-intent
func (h *BookingHandler) DepositIntentHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	secret, err := h.Svc.CreateDepositIntent(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
