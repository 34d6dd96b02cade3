package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InstituteStatus is the admin-approval state of an institute listing.
type InstituteStatus string

const (
	InstituteStatusPending  InstituteStatus = "pending"
	InstituteStatusApproved InstituteStatus = "approved"
	InstituteStatusRejected InstituteStatus = "rejected"
)

// CanTransition reports whether moving from s to target is a legal approval
// transition. Approved and rejected are terminal; the status fields are never
// overwritten outside this check.
func (s InstituteStatus) CanTransition(target InstituteStatus) bool {
	if s != InstituteStatusPending {
		return false
	}
	return target == InstituteStatusApproved || target == InstituteStatusRejected
}

// Valid reports whether s is a known institute status.
func (s InstituteStatus) Valid() bool {
	switch s {
	case InstituteStatusPending, InstituteStatusApproved, InstituteStatusRejected:
		return true
	}
	return false
}

// Institute represents an educational organization listed on the platform.
// It is owned by exactly one user with role "institute".
type Institute struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"`

	Name               string         `gorm:"not null" json:"name"`
	Contact            string         `gorm:"type:varchar(50)" json:"contact"`
	Location           string         `gorm:"type:varchar(255)" json:"location"`
	Website            string         `gorm:"type:varchar(255)" json:"website"`
	RegistrationNumber string         `gorm:"type:varchar(100)" json:"registration_number"`
	Description        string         `gorm:"type:text" json:"description"`
	Logo               string         `gorm:"type:varchar(512)" json:"logo"`
	Image              string         `gorm:"type:varchar(512)" json:"image"`
	FeeRange           string         `gorm:"type:varchar(100)" json:"fee_range"`
	Rating             float64        `gorm:"default:0" json:"rating"`
	TotalReviews       int            `gorm:"default:0" json:"total_reviews"`
	Featured           bool           `gorm:"default:false;index" json:"featured"`
	Facilities         datatypes.JSON `gorm:"type:jsonb" json:"facilities"`

	// Approval state: pending until an admin approves or rejects. Only
	// approved institutes appear in public listings.
	Status InstituteStatus `gorm:"type:institute_status;default:'pending';index" json:"status"`

	// Subscription relationship. SubscriptionStatus is independent of the
	// approval Status above and stays null until a plan is first requested.
	SubscriptionID     *uint               `gorm:"index" json:"subscription_id"`
	SubscriptionStatus *SubscriptionStatus `gorm:"type:subscription_status" json:"subscription_status"`

	// Relationships
	User         User              `gorm:"foreignKey:UserID" json:"-"`
	Subscription *SubscriptionPlan `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`
	Departments  []Department      `gorm:"foreignKey:InstituteID;constraint:OnDelete:CASCADE" json:"departments,omitempty"`
}

// Department groups an institute's programs.
type Department struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	InstituteID uint           `gorm:"not null;index" json:"institute_id"`
	Name        string         `gorm:"not null" json:"name"`
	Position    int            `gorm:"default:0" json:"position"` // Display order within the institute

	// Relationships
	Institute Institute `gorm:"foreignKey:InstituteID;constraint:OnDelete:CASCADE" json:"-"`
	Programs  []Program `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"programs,omitempty"`
}

// Program is a course of study offered within a department. Its primary key
// is the stable identifier referenced by wishlist entries; reordering or
// renaming departments never invalidates it.
type Program struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	DepartmentID uint           `gorm:"not null;index" json:"department_id"`
	Name         string         `gorm:"not null" json:"name"`
	SemesterFee  float64        `gorm:"default:0" json:"semester_fee"`
	Duration     string         `gorm:"type:varchar(50)" json:"duration"`
	Level        string         `gorm:"type:varchar(50)" json:"level"` // e.g., "undergraduate", "masters"
	Deadline     *time.Time     `json:"deadline"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"` // Drives "active listings" visibility

	// Relationships
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"-"`
}
