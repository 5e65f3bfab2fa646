package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeMissingAnswer      = "MISSING_ANSWER"
	ErrCodeMissingPlaceholder = "MISSING_PLACEHOLDER"

	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Classify maps a domain error to its HTTP status and error code.
func Classify(err error) (int, string) {
	var (
		validationErr  *ValidationParamError
		notFoundErr    *EntityNotFoundError
		emptyListErr   *EmptyRoleListError
		conflictErr    *ConflictError
		duplicateErr   *DuplicateError
		accessErr      *AccessDeniedError
		permissionErr  *PermissionDeniedError
		adminOnlyErr   *AppAdminOnlyError
		placeholderErr *LackOfPlaceholderError
		answerErr      *LackOfRequiredAnswerError
	)

	switch {
	case stderrors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, ErrCodeValidation
	case stderrors.As(err, &notFoundErr), stderrors.As(err, &emptyListErr):
		return http.StatusNotFound, ErrCodeNotFound
	case stderrors.As(err, &conflictErr):
		return http.StatusConflict, ErrCodeConflict
	case stderrors.As(err, &duplicateErr):
		return http.StatusConflict, ErrCodeAlreadyExists
	case stderrors.As(err, &accessErr):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case stderrors.As(err, &permissionErr), stderrors.As(err, &adminOnlyErr):
		return http.StatusForbidden, ErrCodeForbidden
	case stderrors.As(err, &placeholderErr):
		return http.StatusRequestedRangeNotSatisfiable, ErrCodeMissingPlaceholder
	case stderrors.As(err, &answerErr):
		return http.StatusBadRequest, ErrCodeMissingAnswer
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// Respond writes err as an APIError. Internal errors are logged in full and
// answered with a generic message.
func Respond(c *gin.Context, logger *zap.Logger, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		RespondWithError(c, status, NewAPIError(code, "Internal server error"))
		return
	}

	logger.Warn("request rejected",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	RespondWithError(c, status, NewAPIError(code, err.Error()))
}
