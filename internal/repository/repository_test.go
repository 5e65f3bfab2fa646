package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-user-api/internal/database"
	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/testutil"
	"github.com/yukikurage/org-user-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type repositoryTestEnv struct {
	db          *gorm.DB
	uow         *database.UnitOfWork
	gateway     *testutil.FakeGateway
	orgRepo     OrganizationRepository
	userRepo    UserRepository
	userOrgRepo UserOrganizationRepository
}

func setupRepositoryTestEnv(t *testing.T) repositoryTestEnv {
	t.Helper()

	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)
	logger := zap.NewNop()
	gateway := &testutil.FakeGateway{}

	userOrgRepo := NewUserOrganizationRepository(uow, logger)

	return repositoryTestEnv{
		db:          db,
		uow:         uow,
		gateway:     gateway,
		orgRepo:     NewOrganizationRepository(uow, logger),
		userRepo:    NewUserRepository(uow, userOrgRepo, gateway, logger),
		userOrgRepo: userOrgRepo,
	}
}

// stepClock makes every utils.Now call one second later than the previous one.
func stepClock(t *testing.T) {
	t.Helper()

	current := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	utils.Clock = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() {
		utils.Clock = time.Now
	})
}

func createTestOrganization(t *testing.T, repo OrganizationRepository, name string) *models.Organization {
	t.Helper()

	org, err := repo.Save(context.Background(), &models.Organization{Name: &name})
	require.NoError(t, err)
	return org
}

func createTestUser(t *testing.T, env repositoryTestEnv, cognitoUserID, email string, orgID uint64) *models.User {
	t.Helper()

	user, err := env.userRepo.CreateWithRole(context.Background(), &models.User{
		CognitoUserID: cognitoUserID,
		DisplayName:   cognitoUserID,
		Email:         email,
	}, orgID, models.RoleMember, "Secret_123")
	require.NoError(t, err)
	return user
}
