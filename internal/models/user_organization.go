package models

import "time"

type UserRole string

const (
	RoleAppAdmin UserRole = "app_admin"
	RoleOrgAdmin UserRole = "org_admin"
	RoleMember   UserRole = "member"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAppAdmin, RoleOrgAdmin, RoleMember:
		return true
	}
	return false
}

type UserOrganization struct {
	UserID         uint64    `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	OrganizationID uint64    `gorm:"primarykey;autoIncrement:false" json:"organization_id"`
	Role           UserRole  `gorm:"type:varchar(255);not null" json:"role"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`

	// Relations
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (UserOrganization) TableName() string {
	return "user_organization"
}
