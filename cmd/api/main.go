package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/database"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/routes"
)

func main() {
	log.Println("✅ Starting application...")

	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	defer database.Disconnect(client)
	db := client.Database(cfg.MongoDB)

	if err := repository.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("❌ Failed to create indexes: %v", err)
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-session-id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, db)

	log.Printf("🚀 Server running on port %s in %s mode", cfg.Port, cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
