package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values carried in JWT claims and checked by middleware.
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// User is a registered citizen or administrator.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:20;not null;default:'citizen'" json:"role"`
	Phone     string         `gorm:"size:20" json:"phone,omitempty"`
	Address   string         `gorm:"size:255" json:"address,omitempty"`
	City      string         `gorm:"size:100" json:"city,omitempty"`
	Pincode   string         `gorm:"size:10" json:"pincode,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
