package main

import (
	"melon-market/pkg/cache"
	"melon-market/pkg/config"
	"melon-market/pkg/database"
	"melon-market/pkg/logger"
	"melon-market/pkg/queue"
	"melon-market/pkg/s3"
	postApp "melon-market/services/post/internal/app"
)

// @title           Melon Market Post Service API
// @version         1.0
// @description     Marketplace posting service: listings, hearts, comments and the main feed.

// @host      localhost:8002
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	// The notification broker is optional; the service runs without it.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ, notifications disabled: %v", err)
		queueClient = nil
	}

	postApp.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
