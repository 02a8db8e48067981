package main

import (
	"context" // Startup context

	"record_store/internal/config" // Custom package for configuration
	"record_store/internal/server" // App assembly

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	server.SetupLogger(cfg)    // Setup logger
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Redis is optional unless it also stores the documents
	redisClient, err := server.NewRedisClient(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	backend, err := server.NewBackend(ctx, cfg, redisClient)
	if err != nil {
		logrus.Fatalf("failed to open storage: %v", err)
	}

	r, err := server.New(ctx, cfg, server.Deps{Backend: backend, Redis: redisClient})
	if err != nil {
		logrus.Fatalf("failed to build %s app: %v", cfg.App, err)
	}

	logrus.WithFields(logrus.Fields{
		"app":     cfg.App,           // Which app is served
		"port":    cfg.AppPort,       // Listening port
		"storage": cfg.StorageDriver, // Document backend
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
