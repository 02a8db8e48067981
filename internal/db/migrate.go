package db

import (
	"context"       // Context for backend writes
	"encoding/json" // Validate imported documents
	"fmt"           // Error wrapping
	"io/fs"         // Directory walking
	"os"            // File reading
	"path/filepath" // Path manipulation
	"strings"       // Name trimming

	"record_store/internal/storage" // Document storage

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the documents table
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create the table, its primary key and missing columns
	if err := db.AutoMigrate(&storage.DocumentRow{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// ImportDir copies every *.json file under dir into backend.
// A file at <dir>/notes/users.json becomes the document "notes/users".
// Files that are not valid JSON are skipped with a warning.
func ImportDir(ctx context.Context, backend storage.Backend, dir string) (int, error) {
	imported := 0 // Number of documents written
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil // Only JSON files are documents
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".json") // Document name
		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(body) {
			logrus.WithField("file", path).Warn("Skipping malformed document")
			return nil
		}
		if err := backend.Write(ctx, name, body); err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
		logrus.WithFields(logrus.Fields{
			"document": name, // Target document
			"bytes":    len(body),
		}).Info("Document imported")
		imported++
		return nil
	})
	return imported, err
}
