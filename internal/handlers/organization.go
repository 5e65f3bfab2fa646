package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-user-api/internal/dto"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/services"
	"go.uber.org/zap"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
	logger     *zap.Logger
}

func NewOrganizationHandler(orgService *services.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// CreateOrganization creates a new organization
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, h.logger, invalidBody(err))
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), services.CreateOrganizationInput{
		Name:    req.Name,
		Deleted: req.Deleted,
	})
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// ListOrganizations returns all organizations
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgService.ListOrganizations(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTOs(orgs))
}

// GetOrganization returns organization details
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	org, err := h.orgService.GetOrganization(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// UpdateOrganization updates name or deleted flag with an optimistic check
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, h.logger, invalidBody(err))
		return
	}

	org, err := h.orgService.UpdateOrganization(c.Request.Context(), services.UpdateOrganizationInput{
		ID:        id,
		Name:      req.Name,
		Deleted:   req.Deleted,
		UpdatedAt: req.UpdatedAt,
	})
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// DeleteOrganization soft deletes an organization. The optional updated_at
// query parameter (RFC 3339) enables the optimistic check.
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	var updatedAt *time.Time
	if raw := c.Query("updated_at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			apierrors.Respond(c, h.logger, apierrors.NewValidationParamError("updated_at must be an RFC 3339 timestamp"))
			return
		}
		updatedAt = &parsed
	}

	org, err := h.orgService.DeleteOrganization(c.Request.Context(), id, updatedAt)
	if err != nil {
		apierrors.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}
