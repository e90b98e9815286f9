package utils

import (
	"os"
	"path/filepath"

	"coursebay/backend/config"
	"coursebay/backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the sqlite database and migrates the schema. The parent
// directory is created on first run so a fresh checkout works without setup.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Course{},
		&models.Profile{},
		&models.Progress{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
