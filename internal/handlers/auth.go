package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-user-api/internal/dto"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/middleware"
	"github.com/yukikurage/org-user-api/internal/services"
	"go.uber.org/zap"
)

// AuthHandler serves information about the authenticated caller.
type AuthHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser returns the user registered with the token's email.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateCurrentUser changes the display name of the authenticated user.
func (h *AuthHandler) UpdateCurrentUser(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.UpdateCurrentUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, h.logger, invalidBody(err))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), services.UpdateUserInput{
		Email:       email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
