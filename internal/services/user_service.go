package services

import (
	"context"
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/repository"
)

// UserService provides business logic for user operations.
type UserService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// CreateUserInput represents parameters to create a user bound to an organization.
type CreateUserInput struct {
	CognitoUserID  string `json:"cognito_user_id" validate:"required,notblank,max=255"`
	Email          string `json:"email" validate:"required,email,max=255"`
	DisplayName    string `json:"display_name" validate:"required,notblank,max=100"`
	Role           string `json:"role" validate:"required,user_role"`
	OrganizationID uint64 `json:"organization_id" validate:"gt=0"`
	Password       string `json:"password" validate:"required"`
}

// CreateUser validates the input, checks the organization and creates the
// user, its role assignment and its identity provider account.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.orgRepo.Exists(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apierrors.NewEntityNotFoundError("Organization", input.OrganizationID,
			fmt.Sprintf("organization does not exist: organization_id=%d", input.OrganizationID))
	}

	user := &models.User{
		CognitoUserID: input.CognitoUserID,
		Email:         input.Email,
		DisplayName:   input.DisplayName,
	}
	return s.userRepo.CreateWithRole(ctx, user, input.OrganizationID, models.UserRole(input.Role), input.Password)
}

// ListUsers returns users, optionally only the members of one organization.
func (s *UserService) ListUsers(ctx context.Context, organizationID *uint64) ([]models.User, error) {
	return s.userRepo.List(ctx, repository.UserFilter{OrganizationID: organizationID})
}

// GetUserByEmail returns the active user registered with email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

// UpdateUserInput carries the editable profile fields of a user.
type UpdateUserInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,notblank,max=100"`
}

// UpdateUser renames the active user registered with the given email.
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.userRepo.UpdateDisplayName(ctx, input.Email, input.DisplayName)
}

// DeleteUser removes the user identified by its identity provider id.
func (s *UserService) DeleteUser(ctx context.Context, cognitoUserID string) error {
	if strings.TrimSpace(cognitoUserID) == "" {
		return apierrors.NewValidationParamError("cognito_user_id is required")
	}
	return s.userRepo.DeleteWithAccount(ctx, cognitoUserID)
}
