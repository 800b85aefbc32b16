package main

import (
	"context"                        // context package is needed for Redis operations
	"literary_voice/internal/api"    // Custom package for API handlers
	"literary_voice/internal/config" // Custom package for configuration
	"literary_voice/internal/db"     // Custom package for database setup
	"literary_voice/internal/ledger" // Custom package for the credit ledger

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database selected by DB_DRIVER
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	// Create the schema on first boot
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, balance cache disabled")
	}

	if cfg.AdminKey == "change_me_in_production" {
		logrus.Warn("ADMIN_KEY is using the default value")
	}

	svc := ledger.NewService(gdb, ledger.Options{
		AdminKey: cfg.AdminKey, // Admin secret
		Redis:    redisClient,  // Optional cache
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, svc, cfg.JWTSecret) // Ledger routes

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
