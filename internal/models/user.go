package models

import "time"

type User struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	CognitoUserID string    `gorm:"type:varchar(255);not null;uniqueIndex:ix_user_cognito_user_id" json:"cognito_user_id"`
	DisplayName   string    `gorm:"type:varchar(255);not null;index" json:"display_name"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex:ix_user_email" json:"email"`
	Deleted       bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
