package model

import "time"

// WishlistEntry is a saved-for-later association between a student and a
// specific institute program. The (user, institute, program) triple is unique;
// the unique index is the race-safety backstop behind the handler's lookup.
//
// InstituteID and ProgramID deliberately carry no foreign-key constraint:
// deleting an institute or program leaves the entry dangling, and reads
// resolve such entries with null details instead of failing.
type WishlistEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_wishlist_triple,priority:1;index" json:"user_id"`
	InstituteID uint      `gorm:"not null;uniqueIndex:idx_wishlist_triple,priority:2" json:"institute_id"`
	ProgramID   uint      `gorm:"not null;uniqueIndex:idx_wishlist_triple,priority:3" json:"program_id"`
}

// TableName specifies the table name for WishlistEntry
func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}
