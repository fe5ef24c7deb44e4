package routes

import (
	"citypulse-be/controllers"
	"citypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue and leaderboard routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(10), controllers.CreateIssue)
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/recent", controllers.RecentIssues)
		issue.GET("/analytics", controllers.GetIssueAnalytics)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issue.GET("/:id", middlewares.OptionalAuthMiddleware(), controllers.GetIssue)
		issue.GET("/:id/comments", controllers.GetComments)
		issue.POST("/:id/comments", middlewares.AuthMiddleware(), controllers.CreateComment)
		issue.PUT("/:id", middlewares.AuthMiddleware(), controllers.UpdateIssue)
		issue.POST("/:id/like", middlewares.AuthMiddleware(), controllers.LikeIssue)
	}

	r.GET("/api/leaderboard", controllers.GetLeaderboard)
	r.GET("/api/profile/stats", middlewares.AuthMiddleware(), controllers.GetProfileStats)
}
