package services

import (
	"context"

	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/repository"
)

// UserOrganizationService exposes role assignment lookups.
type UserOrganizationService struct {
	userOrgRepo repository.UserOrganizationRepository
	userRepo    repository.UserRepository
}

func NewUserOrganizationService(userOrgRepo repository.UserOrganizationRepository, userRepo repository.UserRepository) *UserOrganizationService {
	return &UserOrganizationService{
		userOrgRepo: userOrgRepo,
		userRepo:    userRepo,
	}
}

func (s *UserOrganizationService) GetRole(ctx context.Context, userID, organizationID uint64) (models.UserRole, error) {
	return s.userOrgRepo.GetRole(ctx, userID, organizationID)
}

func (s *UserOrganizationService) ListByUser(ctx context.Context, userID uint64) ([]models.UserOrganization, error) {
	return s.userOrgRepo.ListByUser(ctx, userID)
}

func (s *UserOrganizationService) Exists(ctx context.Context, userID, organizationID uint64) (bool, error) {
	return s.userOrgRepo.Exists(ctx, userID, organizationID)
}

// ListByEmail resolves the active user by email and lists its role assignments.
func (s *UserOrganizationService) ListByEmail(ctx context.Context, email string) ([]models.UserOrganization, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.userOrgRepo.ListByUser(ctx, user.ID)
}
