package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	tenantRepo "detailify/database/repository/tenant"
	"detailify/utils"
)

// JWTAuthTenantMiddleware authenticates tenant admin requests. The token's
// subject claim carries the tenant id, which is verified against the tenant
// store before being placed in the request context.
func JWTAuthTenantMiddleware(repo tenantRepo.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tenantID, err := utils.ExtractTenantIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		if _, err := repo.GetByID(c.Request.Context(), tenantID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown tenant",
			})
			return
		}

		c.Set("tenantID", tenantID)
		c.Next()
	}
}
