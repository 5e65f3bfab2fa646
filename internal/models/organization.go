package models

import "time"

// NotSpecifiedID marks an entity that has not been persisted yet.
const NotSpecifiedID uint64 = 0

type Organization struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      *string   `gorm:"type:varchar(255);index" json:"name"`
	Deleted   *bool     `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func (Organization) TableName() string {
	return "organization"
}

// IsDeleted treats a missing flag as not deleted.
func (o *Organization) IsDeleted() bool {
	return o.Deleted != nil && *o.Deleted
}

// DisplayName returns the name or an empty string when unset.
func (o *Organization) DisplayName() string {
	if o.Name == nil {
		return ""
	}
	return *o.Name
}
