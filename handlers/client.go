package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"detailify/models"
	"detailify/services/client"
)

// ClientHandler serves the tenant's client-management endpoints.
type ClientHandler struct {
	Svc client.ClientService
}

func NewClientHandler(svc client.ClientService) *ClientHandler {
	return &ClientHandler{Svc: svc}
}

// CreateHandler creates a client record.
// POST /api/clients
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var record models.Client
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	record.TenantID = tenantID

	created, err := h.Svc.Create(c.Request.Context(), &record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetHandler returns a single client record.
// GET /api/clients/:id
func (h *ClientHandler) GetHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	record, err := h.Svc.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListHandler returns the tenant's clients, optionally filtered by search.
// GET /api/clients?search=smith
func (h *ClientHandler) ListHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	clients, err := h.Svc.List(c.Request.Context(), tenantID, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// UpdateHandler applies a partial update to a client record.
// PATCH /api/clients/:id
func (h *ClientHandler) UpdateHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Svc.Update(c.Request.Context(), tenantID, c.Param("id"), fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client updated"})
}

// DeleteHandler removes a client record.
// DELETE /api/clients/:id
func (h *ClientHandler) DeleteHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
