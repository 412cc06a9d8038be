package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yash-kumarsharma/vellum/internal/api/middleware"
	"github.com/yash-kumarsharma/vellum/internal/api/routes"
	"github.com/yash-kumarsharma/vellum/internal/config"
	"github.com/yash-kumarsharma/vellum/internal/config/db"
	"github.com/yash-kumarsharma/vellum/pkg/storage"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and run migrations
	db.Init()

	// Object storage for FILE_UPLOAD answers; nil when not configured
	uploads, err := storage.InitMinio()
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, db.DB, uploads)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
