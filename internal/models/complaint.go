package models

import (
	"time"

	"github.com/google/uuid"
)

// Complaint statuses. These are wire values, not just internal names:
// clients send and receive them verbatim.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// ValidStatus reports whether s is a member of the fixed status set.
// There is no ordering between statuses; an admin may move a complaint
// to any of the three at any time, including reopening a resolved one.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Complaint is a citizen-submitted infrastructure report.
type Complaint struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       *string   `gorm:"size:255" json:"image,omitempty"`
	Lat         float64   `gorm:"not null" json:"lat"`
	Lng         float64   `gorm:"not null" json:"lng"`
	Status      string    `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
}
