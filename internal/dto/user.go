package dto

import (
	"time"

	"github.com/yukikurage/org-user-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64    `json:"id"`
	CognitoUserID string    `json:"cognito_user_id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Deleted       bool      `json:"deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateUserRequest is the body of POST /api/user
type CreateUserRequest struct {
	CognitoUserID  string `json:"cognito_user_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	OrganizationID uint64 `json:"organization_id"`
	Password       string `json:"password"`
}

// UpdateCurrentUserRequest is the body of PUT /api/auth/me
type UpdateCurrentUserRequest struct {
	DisplayName string `json:"display_name"`
}

// UserOrganizationDTO represents a role assignment in API responses
type UserOrganizationDTO struct {
	UserID         uint64          `json:"user_id"`
	OrganizationID uint64          `json:"organization_id"`
	Role           models.UserRole `json:"role"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		CognitoUserID: user.CognitoUserID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		Deleted:       user.Deleted,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// ToUserOrganizationDTOs converts role assignments
func ToUserOrganizationDTOs(rows []models.UserOrganization) []UserOrganizationDTO {
	out := make([]UserOrganizationDTO, len(rows))
	for i, row := range rows {
		out[i] = UserOrganizationDTO{
			UserID:         row.UserID,
			OrganizationID: row.OrganizationID,
			Role:           row.Role,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		}
	}
	return out
}
