package main

import (
	"context" // Import context
	"os"      // Import directory from the environment

	"record_store/internal/config"  // Custom import path (Config)
	"record_store/internal/db"      // Custom import path (Database)
	"record_store/internal/server"  // Database connection
	"record_store/internal/storage" // Document backend

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	server.SetupLogger(cfg)

	gdb, err := server.OpenDB(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Optionally copy a file-driver data directory into the documents table
	dir := os.Getenv("MIGRATE_IMPORT_DIR")
	if dir == "" {
		return
	}
	n, err := db.ImportDir(context.Background(), storage.NewGormBackend(gdb), dir)
	if err != nil {
		logrus.Fatalf("import from %s failed: %v", dir, err)
	}
	logrus.WithFields(logrus.Fields{"dir": dir, "documents": n}).Info("Import completed")
}
