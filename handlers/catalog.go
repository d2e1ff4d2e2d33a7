package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"detailify/models"
	"detailify/services/catalog"
	"detailify/utils"
)

// CatalogHandler serves tenant profile, service catalog, and operating-hours
// endpoints.
type CatalogHandler struct {
	Svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// RegisterTenantHandler creates a new tenant account.
// POST /api/tenants/register
func (h *CatalogHandler) RegisterTenantHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Name     string             `json:"name" binding:"required"`
		Email    string             `json:"email" binding:"required,email"`
		Secret   string             `json:"secret" binding:"required"`
		Timezone string             `json:"timezone"`
		Hours    models.WeeklyHours `json:"hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	t := &models.Tenant{
		Name:       req.Name,
		Email:      req.Email,
		SecretHash: req.Secret, // hashed by the service
		Timezone:   req.Timezone,
		Hours:      req.Hours,
	}
	id, err := h.Svc.CreateTenant(c.Request.Context(), t)
	if err != nil {
		logger.Error("failed to register tenant", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetTenantHandler returns the authenticated tenant's profile.
// GET /api/catalog/tenant
func (h *CatalogHandler) GetTenantHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	t, err := h.Svc.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateProfileHandler updates name and/or timezone.
// PATCH /api/catalog/tenant
func (h *CatalogHandler) UpdateProfileHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Svc.UpdateProfile(c.Request.Context(), tenantID, req.Name, req.Timezone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// ListServicesHandler returns the tenant's service definitions.
// GET /api/catalog/services
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	services, err := h.Svc.ListServices(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// PublicListServicesHandler exposes the catalog to the booking widget.
// GET /api/public/:tenantID/services
func (h *CatalogHandler) PublicListServicesHandler(c *gin.Context) {
	services, err := h.Svc.ListServices(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// UpsertServiceHandler creates or replaces a service definition.
// PUT /api/catalog/services
func (h *CatalogHandler) UpsertServiceHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var svc models.ServiceDefinition
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Svc.UpsertService(c.Request.Context(), tenantID, svc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler removes a service definition.
// DELETE /api/catalog/services/:name
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	if err := h.Svc.DeleteService(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

// SetHoursHandler replaces the weekly operating hours.
// PUT /api/catalog/hours
func (h *CatalogHandler) SetHoursHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var hours models.WeeklyHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Svc.SetHours(c.Request.Context(), tenantID, hours); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hours updated"})
}

// AddClosedDateHandler marks a specific date as closed.
// POST /api/catalog/closed-dates
func (h *CatalogHandler) AddClosedDateHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Svc.AddClosedDate(c.Request.Context(), tenantID, req.Date); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "closed date added"})
}

// RemoveClosedDateHandler reopens a previously closed date.
// DELETE /api/catalog/closed-dates/:date
func (h *CatalogHandler) RemoveClosedDateHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	if err := h.Svc.RemoveClosedDate(c.Request.Context(), tenantID, c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "closed date removed"})
}
