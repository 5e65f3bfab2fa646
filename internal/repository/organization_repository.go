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

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	uow    *database.UnitOfWork
	logger *zap.Logger
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(uow *database.UnitOfWork, logger *zap.Logger) OrganizationRepository {
	return &GormOrganizationRepository{uow: uow, logger: logger}
}

// Save inserts or updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	var saved *models.Organization
	err := r.uow.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if org.ID == models.NotSpecifiedID {
			saved, err = r.insert(tx, org)
		} else {
			saved, err = r.update(tx, org)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *GormOrganizationRepository) insert(tx *gorm.DB, org *models.Organization) (*models.Organization, error) {
	now := utils.Now()
	deleted := org.IsDeleted()
	row := &models.Organization{
		Name:      org.Name,
		Deleted:   &deleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(row).Error; err != nil {
		return nil, apierrors.NewUnrecoverableError("failed to create organization", err)
	}
	return row, nil
}

func (r *GormOrganizationRepository) update(tx *gorm.DB, org *models.Organization) (*models.Organization, error) {
	var current models.Organization
	if err := tx.First(&current, org.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewEntityNotFoundError("Organization", org.ID, "")
		}
		return nil, apierrors.NewUnrecoverableError("failed to load organization", err)
	}

	if !org.UpdatedAt.IsZero() && !org.UpdatedAt.Equal(current.UpdatedAt) {
		r.logger.Warn("stale organization update rejected",
			zap.Uint64("organization_id", org.ID),
			zap.Time("presented_updated_at", org.UpdatedAt),
			zap.Time("stored_updated_at", current.UpdatedAt))
		return nil, apierrors.NewConflictError(current.DisplayName())
	}

	if org.Name != nil {
		current.Name = org.Name
	}
	if org.Deleted != nil {
		current.Deleted = org.Deleted
	}
	current.UpdatedAt = utils.Now()

	if err := tx.Save(&current).Error; err != nil {
		return nil, apierrors.NewUnrecoverableError(fmt.Sprintf("failed to update organization %d", org.ID), err)
	}
	return &current, nil
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uint64, excludeDeleted bool) (*models.Organization, error) {
	var org models.Organization
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(database.ExcludeDeleted(excludeDeleted)).First(&org, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewEntityNotFoundError("Organization", id, "")
		}
		return nil, apierrors.NewUnrecoverableError("failed to find organization", err)
	}
	return &org, nil
}

// List retrieves all organizations
func (r *GormOrganizationRepository) List(ctx context.Context, excludeDeleted bool) ([]models.Organization, error) {
	orgs := []models.Organization{}
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(database.ExcludeDeleted(excludeDeleted)).Find(&orgs).Error
	})
	if err != nil {
		return nil, apierrors.NewUnrecoverableError("failed to list organizations", err)
	}
	return orgs, nil
}

// Exists checks for the organization regardless of its deleted flag
func (r *GormOrganizationRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Organization{}).Where("id = ?", id).Count(&count).Error
	})
	if err != nil {
		return false, apierrors.NewUnrecoverableError("failed to check organization", err)
	}
	return count > 0, nil
}
