package model

import "testing"

func TestSubscriptionStatusCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from SubscriptionStatus
		to   SubscriptionStatus
		want bool
	}{
		{"pending to active", SubscriptionStatusPending, SubscriptionStatusActive, true},
		{"pending to rejected", SubscriptionStatusPending, SubscriptionStatusRejected, true},
		{"pending request can change plans", SubscriptionStatusPending, SubscriptionStatusPending, true},
		{"rejected can be re-requested", SubscriptionStatusRejected, SubscriptionStatusPending, true},
		{"rejected cannot activate directly", SubscriptionStatusRejected, SubscriptionStatusActive, false},
		{"rejected cannot be rejected again", SubscriptionStatusRejected, SubscriptionStatusRejected, false},
		{"active can be superseded by a new request", SubscriptionStatusActive, SubscriptionStatusPending, true},
		{"active cannot be rejected", SubscriptionStatusActive, SubscriptionStatusRejected, false},
		{"active cannot re-activate", SubscriptionStatusActive, SubscriptionStatusActive, false},
		{"unknown status", SubscriptionStatus("bogus"), SubscriptionStatusActive, false},
		{"unknown status cannot go pending", SubscriptionStatus("bogus"), SubscriptionStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.want {
				t.Errorf("CanTransition(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
