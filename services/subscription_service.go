package services

import (
	"context"
	"fmt"

	"github.com/Amman-Akbar/GlobalApply/model"
	"gorm.io/gorm"
)

// SubscriptionService owns the subscription assignment and approval state
// machine: none -> pending -> {active, rejected}, with assignment moving any
// prior state back to pending because a new plan request supersedes it. Every
// status write goes through the model's transition table.
//
// The plan's denormalized `institutes` counter counts ACTIVE subscriptions
// only: it is incremented on approval, not on assignment, and decremented
// when an active subscription is removed or replaced. Counter and institute
// writes share one transaction, and the hourly reconcile job repairs any
// drift that slips through.
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// canTransition applies the subscription state machine to an institute whose
// subscription fields may be unset. An institute with no subscription on
// record can only enter pending.
func canTransition(current *model.SubscriptionStatus, target model.SubscriptionStatus) bool {
	if current == nil {
		return target == model.SubscriptionStatusPending
	}
	return current.CanTransition(target)
}

func loadInstituteAndPlan(tx *gorm.DB, instituteID, planID uint) (*model.Institute, *model.SubscriptionPlan, error) {
	var institute model.Institute
	if err := tx.First(&institute, instituteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrInstituteNotFound
		}
		return nil, nil, err
	}

	var plan model.SubscriptionPlan
	if err := tx.First(&plan, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}

	return &institute, &plan, nil
}

// incrementCounter bumps a plan's active-institute counter.
func incrementCounter(tx *gorm.DB, planID uint) error {
	return tx.Model(&model.SubscriptionPlan{}).
		Where("id = ?", planID).
		UpdateColumn("institutes", gorm.Expr("institutes + 1")).
		Error
}

// decrementCounter lowers a plan's counter, floored at zero. The WHERE guard
// makes a double decrement a no-op instead of a negative count.
func decrementCounter(tx *gorm.DB, planID uint) error {
	return tx.Model(&model.SubscriptionPlan{}).
		Where("id = ? AND institutes > 0", planID).
		UpdateColumn("institutes", gorm.Expr("institutes - 1")).
		Error
}

// Assign records an institute's request for a plan, leaving it pending until
// an admin approves. Replacing a previously active subscription releases the
// old plan's counter; the new plan's counter is untouched until approval.
func (s *SubscriptionService) Assign(ctx context.Context, instituteID, planID uint) (*model.Institute, error) {
	var institute *model.Institute

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inst, plan, err := loadInstituteAndPlan(tx, instituteID, planID)
		if err != nil {
			return err
		}

		if plan.Availability != model.PlanAvailabilityActive {
			return ErrPlanUnavailable
		}

		if !canTransition(inst.SubscriptionStatus, model.SubscriptionStatusPending) {
			return ErrInvalidTransition
		}

		// The new assignment is pending, so any previously approved
		// subscription stops counting, including a re-request of the same plan.
		if inst.SubscriptionID != nil &&
			inst.SubscriptionStatus != nil && *inst.SubscriptionStatus == model.SubscriptionStatusActive {
			if err := decrementCounter(tx, *inst.SubscriptionID); err != nil {
				return err
			}
		}

		pending := model.SubscriptionStatusPending
		inst.SubscriptionID = &planID
		inst.SubscriptionStatus = &pending

		if err := tx.Model(inst).Updates(map[string]interface{}{
			"subscription_id":     planID,
			"subscription_status": pending,
		}).Error; err != nil {
			return err
		}

		institute = inst
		return nil
	})
	if err != nil {
		return nil, err
	}

	return institute, nil
}

// Approve activates an institute's pending subscription and claims the plan
// counter. The plan must match the institute's current pending request.
func (s *SubscriptionService) Approve(ctx context.Context, instituteID, planID uint) (*model.Institute, error) {
	var institute *model.Institute

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inst, _, err := loadInstituteAndPlan(tx, instituteID, planID)
		if err != nil {
			return err
		}

		if inst.SubscriptionID == nil || *inst.SubscriptionID != planID ||
			!canTransition(inst.SubscriptionStatus, model.SubscriptionStatusActive) {
			return ErrNoPendingSubscription
		}

		active := model.SubscriptionStatusActive
		inst.SubscriptionStatus = &active

		if err := tx.Model(inst).Update("subscription_status", active).Error; err != nil {
			return err
		}

		if err := incrementCounter(tx, planID); err != nil {
			return err
		}

		institute = inst
		return nil
	})
	if err != nil {
		return nil, err
	}

	return institute, nil
}

// Reject declines an institute's pending subscription request. The plan
// reference is kept for history; no counter changes.
func (s *SubscriptionService) Reject(ctx context.Context, instituteID, planID uint) (*model.Institute, error) {
	var institute *model.Institute

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inst, _, err := loadInstituteAndPlan(tx, instituteID, planID)
		if err != nil {
			return err
		}

		if inst.SubscriptionID == nil || *inst.SubscriptionID != planID ||
			!canTransition(inst.SubscriptionStatus, model.SubscriptionStatusRejected) {
			return ErrNoPendingSubscription
		}

		rejected := model.SubscriptionStatusRejected
		inst.SubscriptionStatus = &rejected

		if err := tx.Model(inst).Update("subscription_status", rejected).Error; err != nil {
			return err
		}

		institute = inst
		return nil
	})
	if err != nil {
		return nil, err
	}

	return institute, nil
}

// Remove clears an institute's subscription entirely. Decrements the plan
// counter only when the subscription being removed was active, so removing a
// pending or rejected request (or removing twice) never underflows.
func (s *SubscriptionService) Remove(ctx context.Context, instituteID, planID uint) (*model.Institute, error) {
	var institute *model.Institute

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inst, _, err := loadInstituteAndPlan(tx, instituteID, planID)
		if err != nil {
			return err
		}

		if inst.SubscriptionID == nil || *inst.SubscriptionID != planID {
			return ErrNotSubscribed
		}

		wasActive := inst.SubscriptionStatus != nil && *inst.SubscriptionStatus == model.SubscriptionStatusActive

		inst.SubscriptionID = nil
		inst.SubscriptionStatus = nil

		if err := tx.Model(inst).Updates(map[string]interface{}{
			"subscription_id":     nil,
			"subscription_status": nil,
		}).Error; err != nil {
			return err
		}

		if wasActive {
			if err := decrementCounter(tx, planID); err != nil {
				return err
			}
		}

		institute = inst
		return nil
	})
	if err != nil {
		return nil, err
	}

	return institute, nil
}

// DeletePlan removes a plan unless any institute still references it.
func (s *SubscriptionService) DeletePlan(ctx context.Context, planID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan model.SubscriptionPlan
		if err := tx.First(&plan, planID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPlanNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&model.Institute{}).
			Where("subscription_id = ?", planID).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: %d institute(s)", ErrPlanInUse, refs)
		}

		return tx.Delete(&plan).Error
	})
}

// ReconcileCounters recomputes every plan's `institutes` counter from actual
// active assignments. Returns the number of plans whose counter was repaired.
func (s *SubscriptionService) ReconcileCounters(ctx context.Context) (int, error) {
	var plans []model.SubscriptionPlan
	if err := s.db.WithContext(ctx).Find(&plans).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for _, plan := range plans {
		var actual int64
		err := s.db.WithContext(ctx).Model(&model.Institute{}).
			Where("subscription_id = ? AND subscription_status = ?", plan.ID, model.SubscriptionStatusActive).
			Count(&actual).Error
		if err != nil {
			return repaired, err
		}

		if actual != plan.Institutes {
			err := s.db.WithContext(ctx).Model(&model.SubscriptionPlan{}).
				Where("id = ?", plan.ID).
				UpdateColumn("institutes", actual).Error
			if err != nil {
				return repaired, err
			}
			repaired++
		}
	}

	return repaired, nil
}
