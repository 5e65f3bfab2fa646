package database

import (
	"gorm.io/gorm"
)

// ExcludeDeleted filters out soft-deleted rows when enabled.
func ExcludeDeleted(enabled bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !enabled {
			return db
		}
		return db.Where("deleted = ?", false)
	}
}
