package database

import (
	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/models"
)

// AutoMigrate creates or updates the schema for every model. Used directly
// for SQLite test databases and by cmd/migrate for Postgres.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.LogEntry{},
		&models.Allergen{},
		&models.EducationalResource{},
		&models.RecallAlert{},
	)
}
