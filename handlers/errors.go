package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"detailify/services/availability"
	"detailify/services/booking"
	"detailify/services/catalog"
	"detailify/services/client"
)

// respondError maps domain errors to HTTP status codes with a JSON body.
func respondError(c *gin.Context, err error) {
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrServiceNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, catalog.ErrTenantNotFound),
		errors.Is(err, client.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// tenantFromContext returns the tenant id set by the auth middleware.
func tenantFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("tenantID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tenant not authenticated"})
		return "", false
	}
	tenantID, ok := v.(string)
	if !ok || tenantID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid tenant ID in context"})
		return "", false
	}
	return tenantID, true
}
