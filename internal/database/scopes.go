package database

import (
	"gorm.io/gorm"
)

// NotDeleted restricts a query to rows that have not been soft-deleted.
// Every read on users and tasks goes through this scope so the visibility
// predicate lives in exactly one place.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// OwnedBy restricts a query to rows belonging to the given user.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
