package services

import (
	"context"
	"log"
	"time"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/utils/cache"
	"gorm.io/gorm"
)

const listingCacheTTL = 5 * time.Minute

// ListingService serves the public read-only aggregate views: featured,
// trending, and latest institutes, and active programs grouped by department.
// Only approved institutes are visible through any of them.
//
// Views are cached in Redis with a short TTL; a nil or unreachable cache
// degrades to direct database reads.
type ListingService struct {
	db         *gorm.DB
	redisCache *cache.RedisCache
}

// NewListingService creates a new listing service
func NewListingService(db *gorm.DB, redisCache *cache.RedisCache) *ListingService {
	return &ListingService{
		db:         db,
		redisCache: redisCache,
	}
}

// ProgramListing is one active program row in the grouped programs view.
type ProgramListing struct {
	ProgramID     uint       `json:"program_id"`
	ProgramName   string     `json:"program_name"`
	SemesterFee   float64    `json:"semester_fee"`
	Duration      string     `json:"duration"`
	Level         string     `json:"level"`
	Deadline      *time.Time `json:"deadline"`
	Department    string     `json:"department"`
	InstituteID   uint       `json:"institute_id"`
	InstituteName string     `json:"institute_name"`
}

// DepartmentGroup is the grouped shape of the active programs view.
type DepartmentGroup struct {
	Department string           `json:"department"`
	Programs   []ProgramListing `json:"programs"`
}

func (s *ListingService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.redisCache == nil {
		return false
	}
	if err := s.redisCache.GetJSON(ctx, key, dest); err != nil {
		return false
	}
	return true
}

func (s *ListingService) toCache(ctx context.Context, key string, value interface{}) {
	if s.redisCache == nil {
		return
	}
	if err := s.redisCache.SetJSON(ctx, key, value, listingCacheTTL); err != nil {
		log.Printf("Warning: failed to cache listing %s: %v", key, err)
	}
}

// Invalidate drops all cached listing views. Called when an institute's
// approval status or content changes.
func (s *ListingService) Invalidate(ctx context.Context) {
	if s.redisCache == nil {
		return
	}
	if err := s.redisCache.DeleteByPattern(ctx, "listings:*"); err != nil {
		log.Printf("Warning: failed to invalidate listing cache: %v", err)
	}
}

func (s *ListingService) approvedInstitutes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&model.Institute{}).
		Where("status = ?", model.InstituteStatusApproved)
}

// Featured returns approved institutes carrying the featured flag.
func (s *ListingService) Featured(ctx context.Context, limit int) ([]model.Institute, error) {
	key := "listings:featured"
	var institutes []model.Institute
	if s.fromCache(ctx, key, &institutes) {
		return institutes, nil
	}

	err := s.approvedInstitutes(ctx).
		Where("featured = ?", true).
		Order("rating DESC").
		Limit(limit).
		Find(&institutes).Error
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, institutes)
	return institutes, nil
}

// Trending returns approved institutes ordered by rating and review volume.
func (s *ListingService) Trending(ctx context.Context, limit int) ([]model.Institute, error) {
	key := "listings:trending"
	var institutes []model.Institute
	if s.fromCache(ctx, key, &institutes) {
		return institutes, nil
	}

	err := s.approvedInstitutes(ctx).
		Order("rating DESC, total_reviews DESC").
		Limit(limit).
		Find(&institutes).Error
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, institutes)
	return institutes, nil
}

// Latest returns the most recently approved-and-created institutes.
func (s *ListingService) Latest(ctx context.Context, limit int) ([]model.Institute, error) {
	key := "listings:latest"
	var institutes []model.Institute
	if s.fromCache(ctx, key, &institutes) {
		return institutes, nil
	}

	err := s.approvedInstitutes(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&institutes).Error
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, institutes)
	return institutes, nil
}

// ActivePrograms returns all active programs of approved institutes, grouped
// by department name.
func (s *ListingService) ActivePrograms(ctx context.Context) ([]DepartmentGroup, error) {
	key := "listings:active_programs"
	var groups []DepartmentGroup
	if s.fromCache(ctx, key, &groups) {
		return groups, nil
	}

	var rows []ProgramListing
	err := s.db.WithContext(ctx).
		Model(&model.Program{}).
		Select(`programs.id AS program_id, programs.name AS program_name, programs.semester_fee,
			programs.duration, programs.level, programs.deadline,
			departments.name AS department,
			institutes.id AS institute_id, institutes.name AS institute_name`).
		Joins("JOIN departments ON departments.id = programs.department_id AND departments.deleted_at IS NULL").
		Joins("JOIN institutes ON institutes.id = departments.institute_id AND institutes.deleted_at IS NULL").
		Where("programs.is_active = ? AND institutes.status = ?", true, model.InstituteStatusApproved).
		Order("departments.name ASC, programs.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groups = groupByDepartment(rows)

	s.toCache(ctx, key, groups)
	return groups, nil
}

// groupByDepartment folds the flat join rows into per-department groups,
// preserving the query's department order.
func groupByDepartment(rows []ProgramListing) []DepartmentGroup {
	groups := []DepartmentGroup{}
	index := map[string]int{}

	for _, row := range rows {
		i, ok := index[row.Department]
		if !ok {
			i = len(groups)
			index[row.Department] = i
			groups = append(groups, DepartmentGroup{Department: row.Department})
		}
		groups[i].Programs = append(groups[i].Programs, row)
	}

	return groups
}
