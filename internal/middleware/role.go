package middleware

import (
	"net/http"

	"soccerspot/internal/domain"
	"soccerspot/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		got, _ := role.(string)
		for _, r := range roles {
			if got == string(r) {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

func OwnerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner, domain.RoleAdmin)
}
