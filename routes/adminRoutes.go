package routes

import (
	"citypulse-be/controllers"
	"citypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the moderation routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware())
	{
		admin.POST("/issues/status", controllers.BulkUpdateStatus)
		admin.POST("/issues/delete", controllers.BulkDeleteIssues)
		admin.GET("/issues/export", controllers.ExportIssues)
		admin.POST("/issues/import", controllers.ImportIssues)
	}
}
