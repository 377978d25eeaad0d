package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"business-directory-service/internal/model"
)

// RequireRoles rejects the request with Forbidden unless the identity
// attached by Authenticate holds one of the given roles. Must run after
// Authenticate.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		for _, r := range roles {
			if identity.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}
