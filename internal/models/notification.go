package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types. status_update is the fallback for any status
// outside the named set.
const (
	NotificationStatusUpdate = "status_update"
	NotificationResolved     = "resolved"
	NotificationInProgress   = "in_progress"
	NotificationPending      = "pending"
)

// Notification informs a complaint's owner about a status change.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ComplaintID uuid.UUID `gorm:"type:uuid;not null;index" json:"complaint_id"`
	Type        string    `gorm:"size:20;not null;default:'status_update'" json:"type"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Read        bool      `gorm:"not null;default:false;index" json:"read"`
	AdminAction bool      `gorm:"not null;default:false" json:"admin_action"`
	CreatedAt   time.Time `json:"created_at"`
	Complaint   Complaint `gorm:"foreignKey:ComplaintID" json:"complaint"`
}
