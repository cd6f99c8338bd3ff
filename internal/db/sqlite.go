package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	feedbackdomain "viralcopy/backend/internal/features/feedback/domain"
	generationdomain "viralcopy/backend/internal/features/generation/domain"
	usersdomain "viralcopy/backend/internal/features/users/domain"
	"viralcopy/backend/internal/platform/logger"
)

// Open creates the SQLite database file (and its parent directory) if needed
// and runs migrations for every model. The tool owns its schema; there is no
// external migration step.
func Open(path string, log *logger.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := gormDB.AutoMigrate(
		&usersdomain.User{},
		&generationdomain.Generation{},
		&generationdomain.RegenerateLog{},
		&generationdomain.CopyAction{},
		&feedbackdomain.Feedback{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database ready", "path", path)
	return gormDB, nil
}
