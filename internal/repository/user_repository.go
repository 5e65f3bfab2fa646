package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/yukikurage/org-user-api/internal/database"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/idp"
	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// userConstraintErrors translates a violated user constraint into the
// domain error reported to the caller.
var userConstraintErrors = map[string]func(user *models.User, v violation) error{
	constraintUserEmail: func(user *models.User, _ violation) error {
		return apierrors.NewDuplicateError(fmt.Sprintf("email is already registered: %s", user.Email))
	},
	constraintUserCognitoUserID: func(user *models.User, _ violation) error {
		return apierrors.NewDuplicateError(fmt.Sprintf("user already exists: %s", user.CognitoUserID))
	},
	constraintUserPrimaryKey: func(user *models.User, v violation) error {
		id := primaryKeyFromDetail(v.detail)
		if id == "" {
			id = strconv.FormatUint(user.ID, 10)
		}
		return apierrors.NewDuplicateError(fmt.Sprintf("user id is already taken: id=%s", id))
	},
}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	uow         *database.UnitOfWork
	userOrgRepo UserOrganizationRepository
	gateway     idp.Gateway
	logger      *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(uow *database.UnitOfWork, userOrgRepo UserOrganizationRepository, gateway idp.Gateway, logger *zap.Logger) UserRepository {
	return &GormUserRepository{
		uow:         uow,
		userOrgRepo: userOrgRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// Create inserts a user in tx and translates constraint violations.
func (r *GormUserRepository) Create(tx *gorm.DB, user *models.User) error {
	now := utils.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := tx.Create(user).Error
	if err == nil {
		return nil
	}

	v := classifyViolation(err, user.TableName())
	if v.kind == violationUnique {
		if translate, ok := userConstraintErrors[v.constraint]; ok {
			domainErr := translate(user, v)
			r.logger.Warn("user constraint violated",
				zap.String("constraint", v.constraint),
				zap.Error(domainErr))
			return domainErr
		}
	}

	r.logger.Error("failed to create user", zap.Error(err))
	return apierrors.NewUnrecoverableError("database error while creating user", err)
}

// CreateWithRole creates the user, binds it to the organization and
// registers the identity provider account. Any failure rolls the rows back.
func (r *GormUserRepository) CreateWithRole(ctx context.Context, user *models.User, organizationID uint64, role models.UserRole, password string) (*models.User, error) {
	err := r.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.Create(tx, user); err != nil {
			return err
		}
		if user.ID == models.NotSpecifiedID {
			return apierrors.NewUnrecoverableError("user id was not generated", nil)
		}

		if _, err := r.userOrgRepo.Create(tx, user.ID, organizationID, role); err != nil {
			return err
		}

		return r.gateway.CreateAccount(ctx, user.CognitoUserID, password, user.Email)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List retrieves users, optionally restricted to one organization
func (r *GormUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	users := []models.User{}
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		query := tx.Model(&models.User{})
		if filter.OrganizationID != nil {
			query = query.Where("id IN (?)",
				tx.Model(&models.UserOrganization{}).
					Select("user_id").
					Where("organization_id = ?", *filter.OrganizationID))
		}
		return query.Scopes(database.ExcludeDeleted(filter.ExcludeDeleted)).
			Order("id").
			Find(&users).Error
	})
	if err != nil {
		return nil, apierrors.NewUnrecoverableError("failed to list users", err)
	}
	return users, nil
}

// FindByEmail finds a non-deleted user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.uow.ReadOnly(ctx, func(tx *gorm.DB) error {
		return tx.Where("email = ?", email).
			Scopes(database.ExcludeDeleted(true)).
			First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewEntityNotFoundError("User", models.NotSpecifiedID,
				fmt.Sprintf("no user is registered with email: %s", email))
		}
		return nil, apierrors.NewUnrecoverableError("failed to find user", err)
	}
	return &user, nil
}

// UpdateDisplayName changes the display name of the active user with email.
func (r *GormUserRepository) UpdateDisplayName(ctx context.Context, email, displayName string) (*models.User, error) {
	var user models.User
	err := r.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).
			Scopes(database.ExcludeDeleted(true)).
			First(&user).Error; err != nil {
			return err
		}

		user.DisplayName = displayName
		user.UpdatedAt = utils.Now()
		return tx.Model(&user).Updates(map[string]interface{}{
			"display_name": user.DisplayName,
			"updated_at":   user.UpdatedAt,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewEntityNotFoundError("User", models.NotSpecifiedID,
				fmt.Sprintf("no user is registered with email: %s", email))
		}
		return nil, apierrors.NewUnrecoverableError("failed to update user", err)
	}
	return &user, nil
}
