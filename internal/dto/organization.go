package dto

import (
	"time"

	"github.com/yukikurage/org-user-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOrganizationRequest is the body of POST /api/organization
type CreateOrganizationRequest struct {
	Name    *string `json:"name"`
	Deleted *bool   `json:"deleted"`
}

// UpdateOrganizationRequest is the body of PUT /api/organization/:id.
// UpdatedAt is the version last read by the client.
type UpdateOrganizationRequest struct {
	Name      *string    `json:"name"`
	Deleted   *bool      `json:"deleted"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:        org.ID,
		Name:      org.DisplayName(),
		Deleted:   org.IsDeleted(),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

// ToOrganizationDTOs converts a slice of organizations
func ToOrganizationDTOs(orgs []models.Organization) []OrganizationDTO {
	out := make([]OrganizationDTO, len(orgs))
	for i, org := range orgs {
		out[i] = ToOrganizationDTO(org)
	}
	return out
}
