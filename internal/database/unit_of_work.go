package database

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork hands out database scopes. A transaction scope is owned by a
// single caller; operations that must share it receive the tx explicitly.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Transaction runs fn inside a read-write transaction. It commits when fn
// returns nil and rolls back when fn returns an error or panics; the error
// from fn is returned unchanged.
func (u *UnitOfWork) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return u.db.WithContext(ctx).Transaction(fn)
}

// ReadOnly runs fn on a fresh session without an explicit commit or rollback.
func (u *UnitOfWork) ReadOnly(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(u.db.WithContext(ctx).Session(&gorm.Session{NewDB: true}))
}
