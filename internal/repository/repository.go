package repository

import (
	"context"

	"github.com/yukikurage/org-user-api/internal/models"
	"gorm.io/gorm"
)

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Save inserts org when its ID is NotSpecifiedID and otherwise updates the
	// stored row, rejecting stale UpdatedAt values with a ConflictError.
	Save(ctx context.Context, org *models.Organization) (*models.Organization, error)

	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id uint64, excludeDeleted bool) (*models.Organization, error)

	// List retrieves all organizations in storage order
	List(ctx context.Context, excludeDeleted bool) ([]models.Organization, error)

	// Exists reports whether a row with the ID exists, deleted or not
	Exists(ctx context.Context, id uint64) (bool, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	OrganizationID *uint64
	ExcludeDeleted bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a user inside the caller's transaction
	Create(tx *gorm.DB, user *models.User) error

	// CreateWithRole creates a user, its role assignment and the identity
	// provider account within a single transaction.
	CreateWithRole(ctx context.Context, user *models.User, organizationID uint64, role models.UserRole, password string) (*models.User, error)

	// List retrieves users with filtering
	List(ctx context.Context, filter UserFilter) ([]models.User, error)

	// FindByEmail finds a non-deleted user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateDisplayName renames the non-deleted user registered with email
	UpdateDisplayName(ctx context.Context, email, displayName string) (*models.User, error)

	// DeleteWithAccount soft deletes the user and removes the identity
	// provider account, compensating when the database step fails.
	DeleteWithAccount(ctx context.Context, cognitoUserID string) error
}

// UserOrganizationRepository defines the interface for role assignment data access
type UserOrganizationRepository interface {
	// Create inserts a role assignment inside the caller's transaction
	Create(tx *gorm.DB, userID, organizationID uint64, role models.UserRole) (*models.UserOrganization, error)

	// GetRole returns the role the user holds in the organization
	GetRole(ctx context.Context, userID, organizationID uint64) (models.UserRole, error)

	// ListByUser lists a user's role assignments, most recently updated first
	ListByUser(ctx context.Context, userID uint64) ([]models.UserOrganization, error)

	// Exists reports whether the user belongs to the organization
	Exists(ctx context.Context, userID, organizationID uint64) (bool, error)
}
