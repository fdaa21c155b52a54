package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware restricts a route to users whose account role matches one of
// the required roles. It must run after AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetUserIDFromContext(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		userRole := GetUserRoleFromContext(c)
		for _, required := range requiredRoles {
			if strings.EqualFold(userRole, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// GroundOwnerMiddleware is a convenience middleware for ground-owner-only access.
func GroundOwnerMiddleware() gin.HandlerFunc {
	return RoleMiddleware("ground_owner")
}

// PlayerMiddleware is a convenience middleware for player-only access.
func PlayerMiddleware() gin.HandlerFunc {
	return RoleMiddleware("player")
}
