package database

import (
	"fmt"

	"github.com/yukikurage/org-user-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the organization, user and user_organization tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.UserOrganization{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
