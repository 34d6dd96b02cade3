package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Amman-Akbar/GlobalApply/model"
)

func TestCanTransitionNilStatus(t *testing.T) {
	if !canTransition(nil, model.SubscriptionStatusPending) {
		t.Error("an institute without a subscription must be able to request one")
	}
	if canTransition(nil, model.SubscriptionStatusActive) {
		t.Error("an institute without a subscription cannot become active")
	}
	if canTransition(nil, model.SubscriptionStatusRejected) {
		t.Error("an institute without a subscription cannot be rejected")
	}

	active := model.SubscriptionStatusActive
	if !canTransition(&active, model.SubscriptionStatusPending) {
		t.Error("a new request must supersede an active subscription")
	}
	if canTransition(&active, model.SubscriptionStatusActive) {
		t.Error("an active subscription cannot be approved again")
	}
}

func TestSubscriptionLifecycleIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	svc := NewSubscriptionService(db)
	ctx := context.Background()

	institute := createTestInstitute(t, db)
	plan := createTestPlan(t, db)
	base := planCounter(t, db, plan.ID)

	inst, err := svc.Assign(ctx, institute.ID, plan.ID)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if inst.SubscriptionStatus == nil || *inst.SubscriptionStatus != model.SubscriptionStatusPending {
		t.Fatalf("expected pending status after assign, got %v", inst.SubscriptionStatus)
	}
	if got := planCounter(t, db, plan.ID); got != base {
		t.Errorf("counter changed on assign: got %d, want %d", got, base)
	}

	inst, err = svc.Approve(ctx, institute.ID, plan.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if inst.SubscriptionStatus == nil || *inst.SubscriptionStatus != model.SubscriptionStatusActive {
		t.Fatalf("expected active status after approve, got %v", inst.SubscriptionStatus)
	}
	if got := planCounter(t, db, plan.ID); got != base+1 {
		t.Errorf("counter after approve: got %d, want %d", got, base+1)
	}

	if _, err := svc.Approve(ctx, institute.ID, plan.ID); !errors.Is(err, ErrNoPendingSubscription) {
		t.Errorf("second approve: got %v, want ErrNoPendingSubscription", err)
	}
	if got := planCounter(t, db, plan.ID); got != base+1 {
		t.Errorf("counter after rejected double approve: got %d, want %d", got, base+1)
	}

	inst, err = svc.Remove(ctx, institute.ID, plan.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if inst.SubscriptionID != nil || inst.SubscriptionStatus != nil {
		t.Errorf("expected cleared subscription after remove, got id=%v status=%v",
			inst.SubscriptionID, inst.SubscriptionStatus)
	}
	if got := planCounter(t, db, plan.ID); got != base {
		t.Errorf("counter after remove: got %d, want %d", got, base)
	}

	if _, err := svc.Remove(ctx, institute.ID, plan.ID); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("second remove: got %v, want ErrNotSubscribed", err)
	}
	if got := planCounter(t, db, plan.ID); got != base {
		t.Errorf("counter after rejected double remove: got %d, want %d", got, base)
	}
}

func TestAssignReplacesActiveSubscriptionIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	svc := NewSubscriptionService(db)
	ctx := context.Background()

	institute := createTestInstitute(t, db)
	first := createTestPlan(t, db)
	second := createTestPlan(t, db)

	if _, err := svc.Assign(ctx, institute.ID, first.ID); err != nil {
		t.Fatalf("Assign first plan failed: %v", err)
	}
	if _, err := svc.Approve(ctx, institute.ID, first.ID); err != nil {
		t.Fatalf("Approve first plan failed: %v", err)
	}
	if got := planCounter(t, db, first.ID); got != 1 {
		t.Fatalf("first plan counter after approve: got %d, want 1", got)
	}

	// Requesting another plan supersedes the active subscription and
	// releases its counter before the new request is even approved.
	inst, err := svc.Assign(ctx, institute.ID, second.ID)
	if err != nil {
		t.Fatalf("Assign second plan failed: %v", err)
	}
	if inst.SubscriptionStatus == nil || *inst.SubscriptionStatus != model.SubscriptionStatusPending {
		t.Fatalf("expected pending status after replacement, got %v", inst.SubscriptionStatus)
	}
	if got := planCounter(t, db, first.ID); got != 0 {
		t.Errorf("first plan counter after replacement: got %d, want 0", got)
	}
	if got := planCounter(t, db, second.ID); got != 0 {
		t.Errorf("second plan counter before approval: got %d, want 0", got)
	}

	if _, err := svc.Approve(ctx, institute.ID, second.ID); err != nil {
		t.Fatalf("Approve second plan failed: %v", err)
	}
	if got := planCounter(t, db, second.ID); got != 1 {
		t.Errorf("second plan counter after approval: got %d, want 1", got)
	}

	if _, err := svc.Remove(ctx, institute.ID, second.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
}

func TestRejectedSubscriptionCanBeReRequestedIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	svc := NewSubscriptionService(db)
	ctx := context.Background()

	institute := createTestInstitute(t, db)
	plan := createTestPlan(t, db)

	if _, err := svc.Assign(ctx, institute.ID, plan.ID); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	inst, err := svc.Reject(ctx, institute.ID, plan.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if inst.SubscriptionStatus == nil || *inst.SubscriptionStatus != model.SubscriptionStatusRejected {
		t.Fatalf("expected rejected status, got %v", inst.SubscriptionStatus)
	}
	if got := planCounter(t, db, plan.ID); got != 0 {
		t.Errorf("counter after reject: got %d, want 0", got)
	}

	inst, err = svc.Assign(ctx, institute.ID, plan.ID)
	if err != nil {
		t.Fatalf("Re-assign after reject failed: %v", err)
	}
	if inst.SubscriptionStatus == nil || *inst.SubscriptionStatus != model.SubscriptionStatusPending {
		t.Fatalf("expected pending status after re-request, got %v", inst.SubscriptionStatus)
	}

	if _, err := svc.Remove(ctx, institute.ID, plan.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
}

func TestDecrementCounterFlooredAtZeroIntegration(t *testing.T) {
	db := setupIntegrationDB(t)

	plan := createTestPlan(t, db)
	if got := planCounter(t, db, plan.ID); got != 0 {
		t.Fatalf("fresh plan counter: got %d, want 0", got)
	}

	if err := decrementCounter(db, plan.ID); err != nil {
		t.Fatalf("decrementCounter failed: %v", err)
	}
	if got := planCounter(t, db, plan.ID); got != 0 {
		t.Errorf("counter after underflowing decrement: got %d, want 0", got)
	}
}

func TestReconcileCountersIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	svc := NewSubscriptionService(db)
	ctx := context.Background()

	plan := createTestPlan(t, db)

	err := db.Model(&model.SubscriptionPlan{}).
		Where("id = ?", plan.ID).
		UpdateColumn("institutes", 5).Error
	if err != nil {
		t.Fatalf("Failed to corrupt counter: %v", err)
	}

	repaired, err := svc.ReconcileCounters(ctx)
	if err != nil {
		t.Fatalf("ReconcileCounters failed: %v", err)
	}
	if repaired < 1 {
		t.Errorf("repaired plans: got %d, want at least 1", repaired)
	}
	if got := planCounter(t, db, plan.ID); got != 0 {
		t.Errorf("counter after reconcile: got %d, want 0", got)
	}
}
