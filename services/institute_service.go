package services

import (
	"context"

	"github.com/Amman-Akbar/GlobalApply/model"
	"gorm.io/gorm"
)

// InstituteService owns the institute approval state machine.
type InstituteService struct {
	db       *gorm.DB
	listings *ListingService
}

// NewInstituteService creates a new institute service
func NewInstituteService(db *gorm.DB, listings *ListingService) *InstituteService {
	return &InstituteService{
		db:       db,
		listings: listings,
	}
}

// transition moves an institute's approval status through the central
// validator. All status writes go through here; handlers never overwrite the
// field directly.
func (s *InstituteService) transition(ctx context.Context, instituteID uint, target model.InstituteStatus) (*model.Institute, error) {
	var institute model.Institute

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&institute, instituteID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrInstituteNotFound
			}
			return err
		}

		if !institute.Status.CanTransition(target) {
			return ErrInvalidTransition
		}

		institute.Status = target
		return tx.Model(&institute).Update("status", target).Error
	})
	if err != nil {
		return nil, err
	}

	// Approval changes public visibility; drop the cached listing views.
	s.listings.Invalidate(ctx)

	return &institute, nil
}

// Approve transitions a pending institute to approved. Has no effect on the
// institute's subscription status.
func (s *InstituteService) Approve(ctx context.Context, instituteID uint) (*model.Institute, error) {
	return s.transition(ctx, instituteID, model.InstituteStatusApproved)
}

// Reject transitions a pending institute to rejected.
func (s *InstituteService) Reject(ctx context.Context, instituteID uint) (*model.Institute, error) {
	return s.transition(ctx, instituteID, model.InstituteStatusRejected)
}

// RegisterInstitute creates the institute record for a newly registered
// institute user, always starting in pending. Runs inside the registration
// transaction.
func RegisterInstitute(tx *gorm.DB, userID uint, name string) (*model.Institute, error) {
	institute := model.Institute{
		UserID: userID,
		Name:   name,
		Status: model.InstituteStatusPending,
	}
	if err := tx.Create(&institute).Error; err != nil {
		return nil, err
	}
	return &institute, nil
}

// Get loads an institute with its departments and programs.
func (s *InstituteService) Get(ctx context.Context, instituteID uint) (*model.Institute, error) {
	var institute model.Institute
	err := s.db.WithContext(ctx).
		Preload("Departments", func(db *gorm.DB) *gorm.DB {
			return db.Order("departments.position ASC")
		}).
		Preload("Departments.Programs").
		Preload("Subscription").
		First(&institute, instituteID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInstituteNotFound
		}
		return nil, err
	}
	return &institute, nil
}
