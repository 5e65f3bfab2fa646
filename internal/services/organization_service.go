package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/repository"
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name    *string `json:"name" validate:"required,notblank,max=255"`
	Deleted *bool   `json:"deleted"`
}

// CreateOrganization stores a new organization.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	return s.orgRepo.Save(ctx, &models.Organization{
		ID:      models.NotSpecifiedID,
		Name:    input.Name,
		Deleted: input.Deleted,
	})
}

// GetOrganization returns an organization, including soft-deleted ones.
func (s *OrganizationService) GetOrganization(ctx context.Context, id uint64) (*models.Organization, error) {
	return s.orgRepo.FindByID(ctx, id, false)
}

// ListOrganizations returns every organization.
func (s *OrganizationService) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	return s.orgRepo.List(ctx, false)
}

// UpdateOrganizationInput carries the fields to change. UpdatedAt is the
// version the caller last read; when set, a newer stored row is a conflict.
type UpdateOrganizationInput struct {
	ID        uint64     `json:"id" validate:"gt=0"`
	Name      *string    `json:"name" validate:"omitempty,notblank,max=255"`
	Deleted   *bool      `json:"deleted"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// UpdateOrganization applies the given fields with an optimistic check.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, input UpdateOrganizationInput) (*models.Organization, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	org := &models.Organization{
		ID:      input.ID,
		Name:    input.Name,
		Deleted: input.Deleted,
	}
	if input.UpdatedAt != nil {
		org.UpdatedAt = *input.UpdatedAt
	}
	return s.orgRepo.Save(ctx, org)
}

// DeleteOrganization flags the organization as deleted.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, id uint64, updatedAt *time.Time) (*models.Organization, error) {
	deleted := true
	org, err := s.UpdateOrganization(ctx, UpdateOrganizationInput{
		ID:        id,
		Deleted:   &deleted,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete organization: %w", err)
	}
	return org, nil
}
