package repository

import (
	"context"
	"errors"

	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/models"
	"github.com/yukikurage/org-user-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deletionState is a step of the user deletion saga:
// start -> disabled -> softDeleted -> done. The only compensating
// transition is disabled -> start, taken when the database step fails.
type deletionState int

const (
	deletionStart deletionState = iota
	deletionDisabled
	deletionSoftDeleted
	deletionDone
)

type softDeleteStatus int

const (
	softDeleteApplied softDeleteStatus = iota
	softDeleteNotFound
	softDeleteFailed
)

// softDeleteOutcome tags the result of the database step so the saga picks
// its next transition from the status instead of inspecting the error.
type softDeleteOutcome struct {
	status softDeleteStatus
	err    error
}

// DeleteWithAccount disables the identity provider account, soft deletes the
// user row and finally deletes the account. A failed soft delete re-enables
// the account; the database error is returned either way.
func (r *GormUserRepository) DeleteWithAccount(ctx context.Context, cognitoUserID string) error {
	log := r.logger.With(zap.String("cognito_user_id", cognitoUserID))
	state := deletionStart

	for {
		switch state {
		case deletionStart:
			if err := r.gateway.DisableAccount(ctx, cognitoUserID); err != nil {
				log.Warn("failed to disable account", zap.Error(err))
				return err
			}
			state = deletionDisabled

		case deletionDisabled:
			outcome := r.softDelete(ctx, cognitoUserID)
			switch outcome.status {
			case softDeleteApplied:
				state = deletionSoftDeleted
			case softDeleteNotFound:
				log.Warn("no active user to delete; account stays disabled")
				return outcome.err
			case softDeleteFailed:
				r.compensateDisable(ctx, log, cognitoUserID, outcome.err)
				return outcome.err
			}

		case deletionSoftDeleted:
			if err := r.gateway.DeleteAccount(ctx, cognitoUserID); err != nil {
				log.Error("failed to delete account after soft delete; user row stays deleted",
					zap.Error(err))
				return err
			}
			state = deletionDone

		case deletionDone:
			log.Info("user deleted")
			return nil
		}
	}
}

// softDelete flags the active user row as deleted in its own transaction.
func (r *GormUserRepository) softDelete(ctx context.Context, cognitoUserID string) softDeleteOutcome {
	var notFound *apierrors.EntityNotFoundError

	err := r.uow.Transaction(ctx, func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("cognito_user_id = ? AND deleted = ?", cognitoUserID, false).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound = apierrors.NewEntityNotFoundError("User", models.NotSpecifiedID,
				"user with the given id does not exist: cognito_user_id="+cognitoUserID)
			return notFound
		}
		if err != nil {
			return err
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": utils.Now(),
		}).Error
	})

	switch {
	case err == nil:
		return softDeleteOutcome{status: softDeleteApplied}
	case notFound != nil && errors.Is(err, notFound):
		return softDeleteOutcome{status: softDeleteNotFound, err: notFound}
	default:
		return softDeleteOutcome{
			status: softDeleteFailed,
			err:    apierrors.NewUnrecoverableError("failed to delete user", err),
		}
	}
}

// compensateDisable re-enables the account after a failed soft delete.
// Its own failure is logged and never replaces cause.
func (r *GormUserRepository) compensateDisable(ctx context.Context, log *zap.Logger, cognitoUserID string, cause error) {
	if err := r.gateway.EnableAccount(ctx, cognitoUserID); err != nil {
		log.Error("compensation failed; account left disabled",
			zap.NamedError("cause", cause),
			zap.NamedError("compensation_error", err))
		return
	}
	log.Warn("user deletion rolled back; account re-enabled", zap.NamedError("cause", cause))
}
