package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/models"
)

func loadUser(t *testing.T, env repositoryTestEnv, id uint64) models.User {
	t.Helper()

	var user models.User
	require.NoError(t, env.db.First(&user, id).Error)
	return user
}

func TestDeleteWithAccount_Success(t *testing.T) {
	env := setupRepositoryTestEnv(t)
	org := createTestOrganization(t, env.orgRepo, "org")
	alice := createTestUser(t, env, "alice", "alice@example.com", org.ID)
	env.gateway.Calls = nil

	require.NoError(t, env.userRepo.DeleteWithAccount(context.Background(), "alice"))

	require.Equal(t, []string{"disable:alice", "delete:alice"}, env.gateway.Calls)
	require.True(t, loadUser(t, env, alice.ID).Deleted)
}

func TestDeleteWithAccount_DisableFails(t *testing.T) {
	env := setupRepositoryTestEnv(t)
	org := createTestOrganization(t, env.orgRepo, "org")
	alice := createTestUser(t, env, "alice", "alice@example.com", org.ID)
	env.gateway.Calls = nil
	env.gateway.DisableErr = apierrors.NewEntityNotFoundError("User", 0, "user does not exist: cognito_user_id=alice")

	err := env.userRepo.DeleteWithAccount(context.Background(), "alice")

	require.Same(t, env.gateway.DisableErr, err)
	require.Equal(t, []string{"disable:alice"}, env.gateway.Calls)
	require.False(t, loadUser(t, env, alice.ID).Deleted)
}

func TestDeleteWithAccount_UnknownUserIsNotCompensated(t *testing.T) {
	env := setupRepositoryTestEnv(t)

	err := env.userRepo.DeleteWithAccount(context.Background(), "ghost")

	var notFound *apierrors.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "User", notFound.EntityName)
	require.Contains(t, notFound.Message, "ghost")
	require.Equal(t, []string{"disable:ghost"}, env.gateway.Calls)
}

func TestDeleteWithAccount_AlreadyDeletedUser(t *testing.T) {
	env := setupRepositoryTestEnv(t)
	org := createTestOrganization(t, env.orgRepo, "org")
	createTestUser(t, env, "alice", "alice@example.com", org.ID)
	require.NoError(t, env.userRepo.DeleteWithAccount(context.Background(), "alice"))
	env.gateway.Calls = nil

	err := env.userRepo.DeleteWithAccount(context.Background(), "alice")

	var notFound *apierrors.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, []string{"disable:alice"}, env.gateway.Calls)
}

func TestDeleteWithAccount_DatabaseFailureReenablesAccount(t *testing.T) {
	env := setupRepositoryTestEnv(t)
	org := createTestOrganization(t, env.orgRepo, "org")
	createTestUser(t, env, "alice", "alice@example.com", org.ID)
	env.gateway.Calls = nil
	require.NoError(t, env.db.Migrator().DropTable(&models.UserOrganization{}, &models.User{}))

	err := env.userRepo.DeleteWithAccount(context.Background(), "alice")

	var unrecoverable *apierrors.UnrecoverableError
	require.ErrorAs(t, err, &unrecoverable)
	require.NotNil(t, unrecoverable.Err)
	require.Equal(t, []string{"disable:alice", "enable:alice"}, env.gateway.Calls)
}

func TestDeleteWithAccount_CompensationFailureKeepsOriginalError(t *testing.T) {
	env := setupRepositoryTestEnv(t)
	org := createTestOrganization(t, env.orgRepo, "org")
	createTestUser(t, env, "alice", "alice@example.com", org.ID)
	env.gateway.Calls = nil
	env.gateway.EnableErr = errors.New("identity provider unavailable")
	require.NoError(t, env.db.Migrator().DropTable(&models.UserOrganization{}, &models.User{}))

	err := env.userRepo.DeleteWithAccount(context.Background(), "alice")

	var unrecoverable *apierrors.UnrecoverableError
	require.ErrorAs(t, err, &unrecoverable)
	require.False(t, errors.Is(err, env.gateway.EnableErr))
	require.Equal(t, []string{"disable:alice", "enable:alice"}, env.gateway.Calls)
}

func TestDeleteWithAccount_AccountDeleteFailureKeepsRowDeleted(t *testing.T) {
	env := setupRepositoryTestEnv(t)
	org := createTestOrganization(t, env.orgRepo, "org")
	alice := createTestUser(t, env, "alice", "alice@example.com", org.ID)
	env.gateway.Calls = nil
	env.gateway.DeleteErr = errors.New("identity provider unavailable")

	err := env.userRepo.DeleteWithAccount(context.Background(), "alice")

	require.ErrorIs(t, err, env.gateway.DeleteErr)
	require.Equal(t, []string{"disable:alice", "delete:alice"}, env.gateway.Calls)
	require.True(t, loadUser(t, env, alice.ID).Deleted)
}
