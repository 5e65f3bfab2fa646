package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
)

func TestOrganizationService_CreateOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)

	org, err := env.orgService.CreateOrganization(context.Background(), CreateOrganizationInput{Name: strPtr("org")})
	require.NoError(t, err)
	require.Equal(t, "org", org.DisplayName())
	require.False(t, org.IsDeleted())
}

func TestOrganizationService_CreateOrganizationInvalidName(t *testing.T) {
	env := setupServiceTestEnv(t)

	tests := []struct {
		name  string
		input CreateOrganizationInput
	}{
		{name: "missing", input: CreateOrganizationInput{}},
		{name: "blank", input: CreateOrganizationInput{Name: strPtr("   ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.orgService.CreateOrganization(context.Background(), tt.input)

			var validationErr *apierrors.ValidationParamError
			require.ErrorAs(t, err, &validationErr)
			require.Contains(t, validationErr.Message, "name")
		})
	}
}

func TestOrganizationService_UpdateWithStaleVersion(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	org, err := env.orgService.CreateOrganization(ctx, CreateOrganizationInput{Name: strPtr("org")})
	require.NoError(t, err)
	stale := org.UpdatedAt

	_, err = env.orgService.UpdateOrganization(ctx, UpdateOrganizationInput{
		ID:        org.ID,
		Name:      strPtr("first"),
		UpdatedAt: &stale,
	})
	require.NoError(t, err)

	_, err = env.orgService.UpdateOrganization(ctx, UpdateOrganizationInput{
		ID:        org.ID,
		Name:      strPtr("second"),
		UpdatedAt: &stale,
	})
	var conflictErr *apierrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestOrganizationService_DeleteOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	org, err := env.orgService.CreateOrganization(ctx, CreateOrganizationInput{Name: strPtr("org")})
	require.NoError(t, err)

	deleted, err := env.orgService.DeleteOrganization(ctx, org.ID, nil)
	require.NoError(t, err)
	require.True(t, deleted.IsDeleted())

	found, err := env.orgService.GetOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.True(t, found.IsDeleted())

	_, err = env.orgService.DeleteOrganization(ctx, org.ID+1, nil)
	var notFound *apierrors.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
}
