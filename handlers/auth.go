package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	tenantRepo "detailify/database/repository/tenant"
	"detailify/utils"
)

const tenantTokenTTL = 24 * time.Hour

// AuthHandler serves tenant authentication.
type AuthHandler struct {
	Repo tenantRepo.TenantRepository
}

func NewAuthHandler(repo tenantRepo.TenantRepository) *AuthHandler {
	return &AuthHandler{Repo: repo}
}

// LoginHandler exchanges a tenant email and API secret for a JWT.
// POST /api/tenants/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email  string `json:"email" binding:"required,email"`
		Secret string `json:"secret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	t, err := h.Repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(t.SecretHash), []byte(req.Secret)) != nil {
		logger.Warn("tenant login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateTenantToken(t.ID, t.Email, tenantTokenTTL)
	if err != nil {
		logger.Error("failed to issue tenant token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "tenantId": t.ID})
}
