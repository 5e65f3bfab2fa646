package services

import (
	"testing"

	"github.com/yukikurage/org-user-api/internal/database"
	"github.com/yukikurage/org-user-api/internal/repository"
	"github.com/yukikurage/org-user-api/internal/testutil"
	"go.uber.org/zap"
)

type serviceTestEnv struct {
	gateway        *testutil.FakeGateway
	orgService     *OrganizationService
	userService    *UserService
	userOrgService *UserOrganizationService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db := testutil.NewDB(t)
	uow := database.NewUnitOfWork(db)
	logger := zap.NewNop()
	gateway := &testutil.FakeGateway{}

	orgRepo := repository.NewOrganizationRepository(uow, logger)
	userOrgRepo := repository.NewUserOrganizationRepository(uow, logger)
	userRepo := repository.NewUserRepository(uow, userOrgRepo, gateway, logger)

	return serviceTestEnv{
		gateway:        gateway,
		orgService:     NewOrganizationService(orgRepo),
		userService:    NewUserService(userRepo, orgRepo),
		userOrgService: NewUserOrganizationService(userOrgRepo, userRepo),
	}
}

func strPtr(s string) *string {
	return &s
}
