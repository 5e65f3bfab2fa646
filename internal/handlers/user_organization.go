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

type UserOrganizationHandler struct {
	userOrgService *services.UserOrganizationService
	logger         *zap.Logger
}

func NewUserOrganizationHandler(userOrgService *services.UserOrganizationService, logger *zap.Logger) *UserOrganizationHandler {
	return &UserOrganizationHandler{
		userOrgService: userOrgService,
		logger:         logger,
	}
}

// ListMine returns the role assignments of the authenticated user
func (h *UserOrganizationHandler) ListMine(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	rows, err := h.userOrgService.ListByEmail(c.Request.Context(), email)
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserOrganizationDTOs(rows))
}
