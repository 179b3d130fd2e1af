package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarbase/scholarbase/internal/app/controllers"
	"github.com/scholarbase/scholarbase/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	scholarController *controllers.ScholarController,
	taskController *controllers.TaskController,
	goalController *controllers.GoalController,
	requestController *controllers.RequestController,
	announcementController *controllers.AnnouncementController,
	invitationController *controllers.InvitationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Invitation acceptance is the signup path and needs no token
	v1.POST("/invitations/accept", invitationController.Accept)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		scholars := authenticated.Group("/scholars")
		{
			scholars.GET("", scholarController.List)
			scholars.GET("/filter-options", scholarController.FilterOptions)
			scholars.GET("/:id", scholarController.GetByID)
			scholars.GET("/:id/tasks", taskController.ListByScholar)
			scholars.GET("/:id/goals", goalController.ListByScholar)
			scholars.GET("/:id/announcements", announcementController.ListForScholar)
		}

		requests := authenticated.Group("/requests")
		{
			requests.POST("", requestController.Create)
			requests.GET("", requestController.List)
			requests.GET("/stats", requestController.Stats)
			requests.GET("/:id", requestController.GetByID)
			requests.POST("/:id/attachments", requestController.AddAttachment)
		}

		announcements := authenticated.Group("/announcements")
		{
			announcements.GET("", announcementController.List)
			announcements.GET("/:id", announcementController.GetByID)
		}

		// --- Staff-only routes ---
		staff := authenticated.Group("")
		staff.Use(authMiddleware.StaffOnly())
		{
			staff.PATCH("/scholars/:id", scholarController.UpdateProfile)

			staff.POST("/tasks", taskController.Create)
			staff.PATCH("/tasks/:id/status", taskController.UpdateStatus)
			staff.DELETE("/tasks/:id", taskController.Delete)

			staff.POST("/goals", goalController.Create)
			staff.PATCH("/goals/:id", goalController.Update)
			staff.DELETE("/goals/:id", goalController.Delete)

			staff.PATCH("/requests/:id/review", requestController.Review)

			staff.POST("/announcements", announcementController.Create)
			staff.GET("/announcements/filter-options", announcementController.FilterOptions)

			// Invitation management is gated to admins
			invitations := staff.Group("/invitations")
			invitations.Use(authMiddleware.AdminOnly())
			{
				invitations.POST("", invitationController.Create)
				invitations.GET("", invitationController.List)
				invitations.POST("/:id/resend", invitationController.Resend)
				invitations.DELETE("/:id", invitationController.Cancel)
			}
		}
	}
}
