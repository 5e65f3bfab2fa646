// Package idp wraps the external identity provider that owns user credentials.
package idp

import (
	"context"
	"fmt"

	apierrors "github.com/yukikurage/org-user-api/internal/errors"
)

// Gateway is the account lifecycle surface of the identity provider.
// Implementations hold no mutable state shared between requests.
type Gateway interface {
	// CreateAccount registers a new account. Fails with DuplicateError when
	// the username is taken.
	CreateAccount(ctx context.Context, username, password, email string) error
	// DisableAccount blocks sign-in. Fails with EntityNotFoundError when the
	// account is absent.
	DisableAccount(ctx context.Context, username string) error
	// EnableAccount reverses DisableAccount. Fails with EntityNotFoundError
	// when the account is absent.
	EnableAccount(ctx context.Context, username string) error
	// DeleteAccount removes the account permanently. An absent account is not an error.
	DeleteAccount(ctx context.Context, username string) error
}

func accountExistsError(username string) error {
	return apierrors.NewDuplicateError(fmt.Sprintf("user already exists: %s", username))
}

func accountNotFoundError(username string) error {
	return apierrors.NewEntityNotFoundError("User", 0,
		fmt.Sprintf("user does not exist: cognito_user_id=%s", username))
}
