package errors

import (
	"fmt"
	"strings"
)

// EntityNotFoundError is returned when a referenced entity does not exist.
type EntityNotFoundError struct {
	EntityName string
	EntityID   uint64
	Message    string
}

// NewEntityNotFoundError creates an EntityNotFoundError with the default message
// when message is empty.
func NewEntityNotFoundError(entityName string, entityID uint64, message string) *EntityNotFoundError {
	if message == "" {
		message = fmt.Sprintf("%s with ID %d was not found.", entityName, entityID)
	}
	return &EntityNotFoundError{
		EntityName: entityName,
		EntityID:   entityID,
		Message:    message,
	}
}

func (e *EntityNotFoundError) Error() string {
	return e.Message
}

// DuplicateError is returned when a uniqueness rule would be broken.
type DuplicateError struct {
	Message string
}

func NewDuplicateError(message string) *DuplicateError {
	return &DuplicateError{Message: message}
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// ConflictError is returned when an optimistic update loses against a
// concurrent writer.
type ConflictError struct {
	EntityName string
}

func NewConflictError(entityName string) *ConflictError {
	return &ConflictError{EntityName: entityName}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("failed to update %s because another user updated it first", e.EntityName)
}

// ValidationParamError reports invalid request parameters.
type ValidationParamError struct {
	Message string
}

func NewValidationParamError(message string) *ValidationParamError {
	return &ValidationParamError{Message: message}
}

func (e *ValidationParamError) Error() string {
	return e.Message
}

// EmptyRoleListError is returned when a user has no role assignments.
type EmptyRoleListError struct {
	UserID uint64
}

func (e *EmptyRoleListError) Error() string {
	return fmt.Sprintf("user does not belong to any organization: user_id=%d", e.UserID)
}

// AccessDeniedError covers the role-based denials. Variant selects the message.
type AccessDeniedError struct {
	Variant AccessDeniedVariant
}

type AccessDeniedVariant string

const (
	AccessDeniedMember     AccessDeniedVariant = "member"
	AccessDeniedOrgMember  AccessDeniedVariant = "org_member"
	AccessDeniedAppAdmin   AccessDeniedVariant = "app_admin"
	AccessDeniedGeneration AccessDeniedVariant = "generation"
)

func (e *AccessDeniedError) Error() string {
	switch e.Variant {
	case AccessDeniedMember:
		return "members are not allowed to perform this operation"
	case AccessDeniedOrgMember:
		return "organization users are not allowed to perform this operation"
	case AccessDeniedAppAdmin:
		return "application administrators are not allowed to perform this operation"
	case AccessDeniedGeneration:
		return "not allowed to generate this document"
	default:
		return "access denied"
	}
}

// PermissionDeniedError reports a forbidden operation.
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string {
	return e.Message
}

// AppAdminOnlyError is returned for operations reserved to application administrators.
type AppAdminOnlyError struct{}

func (e *AppAdminOnlyError) Error() string {
	return "access denied: only application administrators can perform this operation"
}

// LackOfPlaceholderError reports keys missing from a generated response.
type LackOfPlaceholderError struct {
	MissingKeys []string
}

func (e *LackOfPlaceholderError) Error() string {
	return "required keys are missing from the generated response: " + strings.Join(e.MissingKeys, ", ")
}

// LackOfRequiredAnswerError reports required questions left unanswered.
type LackOfRequiredAnswerError struct {
	MissingItems []string
}

func (e *LackOfRequiredAnswerError) Error() string {
	quoted := make([]string, len(e.MissingItems))
	for i, item := range e.MissingItems {
		quoted[i] = "\"" + item + "\""
	}
	return "required questions are unanswered: " + strings.Join(quoted, ", ")
}

// UnrecoverableError wraps storage or provider failures that have no domain meaning.
type UnrecoverableError struct {
	Detail string
	Err    error
}

func NewUnrecoverableError(detail string, err error) *UnrecoverableError {
	return &UnrecoverableError{Detail: detail, Err: err}
}

func (e *UnrecoverableError) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return fmt.Sprintf("%s: %v", e.Detail, e.Err)
}

func (e *UnrecoverableError) Unwrap() error {
	return e.Err
}
