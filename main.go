package main

import (
	"log"
	"os"

	"clinic-backend/internal/api"
	"clinic-backend/internal/config"
	"clinic-backend/internal/database"
	"clinic-backend/internal/email"
	"clinic-backend/internal/notify"
	"clinic-backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Wire the notification pipeline: mail first, durable record second,
	// push signal last.
	mailer := email.NewSMTPMailer(cfg)
	store := notify.NewPostgresStore(db)
	source := notify.NewPostgresAppointmentSource(db)
	hub := realtime.NewHub()
	notifier := notify.NewService(source, mailer, store, hub)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, db, cfg, notifier, store, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
