package api

import (
	"clinic-backend/internal/auth"
	"clinic-backend/internal/config"
	"clinic-backend/internal/database"
	"clinic-backend/internal/middleware"
	"clinic-backend/internal/notify"
	"clinic-backend/internal/realtime"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config, notifier *notify.Service, store notify.Store, hub *realtime.Hub) {
	server := NewServer(db, cfg, notifier, store, hub)
	jwtManager := auth.NewJWTManager(cfg)

	// CORS middleware
	router.Use(middleware.CORSSpecific(cfg.GetCORSOrigins()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "clinic-backend",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", server.Register)
			authRoutes.POST("/login", server.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			// User routes
			protected.GET("/profile", server.GetProfile)

			// Appointment routes
			appointments := protected.Group("/appointments")
			{
				appointments.GET("", server.GetAppointments)
				appointments.POST("", server.BookAppointment)
				appointments.POST("/:id/approve", middleware.ClinicOnly(), server.ApproveAppointment)
				appointments.POST("/:id/cancel", middleware.ClinicOnly(), server.CancelAppointment)
				appointments.POST("/:id/complete", middleware.ClinicOnly(), server.CompleteAppointment)
				appointments.PUT("/:id/reschedule", middleware.ClinicOnly(), server.RescheduleAppointment)
				// Reminders are triggered by an external scheduler
				appointments.POST("/:id/remind", middleware.ClinicOrAdmin(), server.RemindAppointment)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", server.GetNotifications)
				notifications.GET("/unread", server.GetUnreadStatus)
			}

			// Realtime push channel
			protected.GET("/ws", server.NotificationSocket)
		}
	}
}
