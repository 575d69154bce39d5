package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/vholenko/it-task-manager/internal/database"
	apierrors "github.com/vholenko/it-task-manager/internal/errors"
	"github.com/vholenko/it-task-manager/internal/models"
)

// RequireSuperuser restricts a route to administrators. Runs after
// RequireAuth, so an unknown worker here means a stale session.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var worker models.Worker
		if err := database.GetDB().First(&worker, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !worker.IsSuperuser {
			apierrors.Forbidden(c, "Administrator privileges required")
			c.Abort()
			return
		}

		c.Next()
	}
}
