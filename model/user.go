package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent   = "student"
	RoleInstitute = "institute"
	RoleAdmin     = "admin"
)

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`                               // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, institute, admin
	Image        string         `gorm:"type:varchar(512)" json:"image,omitempty"`
	TokenVersion int            `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	Institute      *Institute          `gorm:"foreignKey:UserID" json:"institute,omitempty"`
	WishlistItems  []WishlistEntry     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AdminAuditLog  []AdminAuditLog     `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
