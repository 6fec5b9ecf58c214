package authctx

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisibleTo returns a GORM scope narrowing a complaint query to what the
// caller may see. Admins get the query unmodified; any other role is
// forced to owner-only rows regardless of the requested filter.
func VisibleTo(id Identity) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id.IsAdmin() {
			return db
		}
		return db.Where("user_id = ?", id.UserID)
	}
}

// ForRecipient scopes notification queries to a single recipient.
// Notifications are never cross-visible, not even to admins.
func ForRecipient(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
