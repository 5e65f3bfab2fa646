package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/org-user-api/internal/database"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormUserOrganizationRepository is a GORM implementation of UserOrganizationRepository
type GormUserOrganizationRepository struct {
	uow    *database.UnitOfWork
	logger *zap.Logger
}

// NewUserOrganizationRepository creates a new UserOrganizationRepository
func NewUserOrganizationRepository(uow *database.UnitOfWork, logger *zap.Logger) UserOrganizationRepository {
	return &GormUserOrganizationRepository{uow: uow, logger: logger}
}

// Create inserts the role assignment in tx. The caller owns the transaction.
func (r *GormUserOrganizationRepository) Create(tx *gorm.DB, userID, organizationID uint64, role models.UserRole) (*models.UserOrganization, error) {
	now := utils.Now()
	row := &models.UserOrganization{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := tx.Create(row).Error
	if err == nil {
		return row, nil
	}

	switch v := classifyViolation(err, row.TableName()); v.kind {
	case violationForeignKey:
		r.logger.Warn("user organization foreign key violated",
			zap.String("constraint", v.constraint), zap.Error(err))
		return nil, apierrors.NewEntityNotFoundError("UserOrganization", organizationID,
			fmt.Sprintf("organization does not exist or the user does not belong to it: user_id=%d, organization_id=%d", userID, organizationID))
	case violationUnique:
		r.logger.Warn("user organization uniqueness violated",
			zap.String("constraint", v.constraint), zap.Error(err))
		return nil, apierrors.NewDuplicateError(
			fmt.Sprintf("user already belongs to the organization: user_id=%d, organization_id=%d", userID, organizationID))
	default:
		r.logger.Error("failed to create user organization", zap.Error(err))
		return nil, err
	}
}

// GetRole returns the user's role in the organization
func (r *GormUserOrganizationRepository) GetRole(ctx context.Context, userID, organizationID uint64) (models.UserRole, error) {
	var row models.UserOrganization
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND organization_id = ?", userID, organizationID).First(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierrors.NewEntityNotFoundError("UserOrganization", organizationID,
				fmt.Sprintf("organization does not exist or the user does not belong to it: user_id=%d, organization_id=%d", userID, organizationID))
		}
		return "", apierrors.NewUnrecoverableError("failed to get role", err)
	}
	return row.Role, nil
}

// ListByUser lists role assignments ordered by updated_at, newest first.
// A user without assignments is reported as EmptyRoleListError.
func (r *GormUserOrganizationRepository) ListByUser(ctx context.Context, userID uint64) ([]models.UserOrganization, error) {
	var rows []models.UserOrganization
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).
			Order("updated_at DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, apierrors.NewUnrecoverableError("failed to list user organizations", err)
	}
	if len(rows) == 0 {
		return nil, &apierrors.EmptyRoleListError{UserID: userID}
	}
	return rows, nil
}

// Exists checks whether the user belongs to the organization
func (r *GormUserOrganizationRepository) Exists(ctx context.Context, userID, organizationID uint64) (bool, error) {
	var count int64
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.UserOrganization{}).
			Where("user_id = ? AND organization_id = ?", userID, organizationID).
			Count(&count).Error
	})
	if err != nil {
		return false, apierrors.NewUnrecoverableError("failed to check user organization", err)
	}
	return count > 0, nil
}
