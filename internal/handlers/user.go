package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-user-api/internal/dto"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser creates a user, its role assignment and its account
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, h.logger, invalidBody(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		CognitoUserID:  req.CognitoUserID,
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		Role:           req.Role,
		OrganizationID: req.OrganizationID,
		Password:       req.Password,
	})
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns users, filtered by the organization_id query parameter when present
func (h *UserHandler) ListUsers(c *gin.Context) {
	var organizationID *uint64
	if raw := c.Query("organization_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.Respond(c, h.logger, apierrors.NewValidationParamError("organization_id must be a positive integer"))
			return
		}
		organizationID = &id
	}

	users, err := h.userService.ListUsers(c.Request.Context(), organizationID)
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// DeleteUser runs the account deletion for the given identity provider id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("cognito_user_id")); err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
