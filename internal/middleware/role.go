package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtbook/internal/pkg/response"
)

// RequireRole ensures the authenticated user carries one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// CoachOnly guards the coach-facing surfaces, such as the open request inbox.
func CoachOnly() gin.HandlerFunc {
	return RequireRole("coach")
}
