package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils/auth"
)

// ReconcilePlanCounters recomputes each subscription plan's denormalized
// institutes counter from actual active assignments. Assignment and counter
// writes share a transaction in the request path, but there is no
// multi-document guarantee across crashes; this job repairs any drift.
func (m *CronManager) ReconcilePlanCounters() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "reconcile_plan_counters"

	subscriptionService := services.NewSubscriptionService(m.db)
	repaired, err := subscriptionService.ReconcileCounters(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to reconcile counters: %w", err))
		return
	}

	if repaired == 0 {
		m.logJobComplete(jobName, "All plan counters consistent")
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Repaired %d plan counter(s)", repaired))
}

// CleanupExpiredTokens removes expired entries from the JWT blacklist.
func (m *CronManager) CleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "cleanup_expired_tokens"

	blacklistService := auth.NewBlacklistService(m.db)
	if err := blacklistService.CleanupExpiredTokens(ctx); err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cleanup expired tokens: %w", err))
		return
	}

	m.logJobComplete(jobName, "Expired blacklist tokens removed")
}
