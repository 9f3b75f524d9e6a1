package middlewares

import (
	"net/http"

	"github.com/PrayerBridge/models"
	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group on the role hierarchy: the session role
// must rank at least as high as min.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.MustGet("role").(models.Role)

		if role.Level() < min.Level() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this resource"})
			return
		}

		c.Next()
	}
}
