package services

import (
	"context"
	"errors"
	"time"

	"github.com/Amman-Akbar/GlobalApply/model"
	"gorm.io/gorm"
)

// WishlistService handles wishlist membership for students.
type WishlistService struct {
	db *gorm.DB
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// WishlistProgram carries the resolved program details of a wishlist entry.
type WishlistProgram struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Department  string     `json:"department"`
	SemesterFee float64    `json:"semester_fee"`
	Duration    string     `json:"duration"`
	Level       string     `json:"level"`
	Deadline    *time.Time `json:"deadline"`
	IsActive    bool       `json:"is_active"`
}

// WishlistInstitute carries the resolved institute details of a wishlist entry.
type WishlistInstitute struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Location string `json:"location"`
}

// WishlistItem is a wishlist entry resolved against the current institute and
// program rows. Institute or Program is null when the referenced row no
// longer exists; such entries are returned, never omitted.
type WishlistItem struct {
	ID          uint               `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	InstituteID uint               `json:"institute_id"`
	ProgramID   uint               `json:"program_id"`
	Institute   *WishlistInstitute `json:"institute"`
	Program     *WishlistProgram   `json:"program"`
}

// Add creates a wishlist entry for the triple. The institute and program must
// exist at insert time; entries only dangle when the rows are deleted later.
// A duplicate triple fails with ErrDuplicateWishlistEntry; the lookup covers
// the common case and the unique index catches the concurrent one.
func (s *WishlistService) Add(ctx context.Context, userID, instituteID, programID uint) (*model.WishlistEntry, error) {
	if err := s.db.WithContext(ctx).First(&model.Institute{}, instituteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstituteNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&model.Program{}, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&model.WishlistEntry{}).
		Where("user_id = ? AND institute_id = ? AND program_id = ?", userID, instituteID, programID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateWishlistEntry
	}

	entry := model.WishlistEntry{
		UserID:      userID,
		InstituteID: instituteID,
		ProgramID:   programID,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateWishlistEntry
		}
		return nil, err
	}

	return &entry, nil
}

// Remove deletes the entry for the triple, failing with
// ErrWishlistEntryNotFound when no matching entry exists.
func (s *WishlistService) Remove(ctx context.Context, userID, instituteID, programID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND institute_id = ? AND program_id = ?", userID, instituteID, programID).
		Delete(&model.WishlistEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistEntryNotFound
	}
	return nil
}

// Check reports whether the triple is in the wishlist. Absence is false, not
// an error.
func (s *WishlistService) Check(ctx context.Context, userID, instituteID, programID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.WishlistEntry{}).
		Where("user_id = ? AND institute_id = ? AND program_id = ?", userID, instituteID, programID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all of a user's wishlist entries, each resolved against the
// current institute and program rows. Dangling references resolve to null
// details rather than dropping the entry.
func (s *WishlistService) List(ctx context.Context, userID uint) ([]WishlistItem, error) {
	var entries []model.WishlistEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	items := make([]WishlistItem, 0, len(entries))
	for _, entry := range entries {
		item := WishlistItem{
			ID:          entry.ID,
			CreatedAt:   entry.CreatedAt,
			InstituteID: entry.InstituteID,
			ProgramID:   entry.ProgramID,
		}

		var institute model.Institute
		err := s.db.WithContext(ctx).First(&institute, entry.InstituteID).Error
		switch {
		case err == nil:
			item.Institute = &WishlistInstitute{
				ID:       institute.ID,
				Name:     institute.Name,
				Logo:     institute.Logo,
				Location: institute.Location,
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		var program model.Program
		err = s.db.WithContext(ctx).
			Preload("Department").
			First(&program, entry.ProgramID).Error
		switch {
		case err == nil:
			item.Program = &WishlistProgram{
				ID:          program.ID,
				Name:        program.Name,
				Department:  program.Department.Name,
				SemesterFee: program.SemesterFee,
				Duration:    program.Duration,
				Level:       program.Level,
				Deadline:    program.Deadline,
				IsActive:    program.IsActive,
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
