package db

import (
	"fmt" // Error wrapping

	"rps_game/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Game{}, &domain.Task{}, &domain.UserTask{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
