package database

import (
	"context"
	"fmt"

	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedInput describes the default records created by Seed.
type SeedInput struct {
	CognitoUserID    string
	DisplayName      string
	Email            string
	OrganizationName string
}

// Seed inserts one user, one organization and an app-admin binding between
// them. Existing rows with the same email or name are reused.
func Seed(ctx context.Context, uow *UnitOfWork, input SeedInput, log *zap.Logger) error {
	return uow.Transaction(ctx, func(tx *gorm.DB) error {
		now := utils.Now()

		user := models.User{
			CognitoUserID: input.CognitoUserID,
			DisplayName:   input.DisplayName,
			Email:         input.Email,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Where(models.User{Email: input.Email}).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		name := input.OrganizationName
		deleted := false
		org := models.Organization{
			Name:      &name,
			Deleted:   &deleted,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Where("name = ?", name).FirstOrCreate(&org).Error; err != nil {
			return fmt.Errorf("failed to seed organization: %w", err)
		}

		binding := models.UserOrganization{
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           models.RoleAppAdmin,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Where(models.UserOrganization{UserID: user.ID, OrganizationID: org.ID}).FirstOrCreate(&binding).Error; err != nil {
			return fmt.Errorf("failed to seed user organization: %w", err)
		}

		log.Info("initial data seeded",
			zap.Uint64("user_id", user.ID),
			zap.Uint64("organization_id", org.ID))
		return nil
	})
}
