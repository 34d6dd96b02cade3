package model

import "testing"

func TestInstituteStatusCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from InstituteStatus
		to   InstituteStatus
		want bool
	}{
		{"pending to approved", InstituteStatusPending, InstituteStatusApproved, true},
		{"pending to rejected", InstituteStatusPending, InstituteStatusRejected, true},
		{"pending to pending", InstituteStatusPending, InstituteStatusPending, false},
		{"approved is terminal", InstituteStatusApproved, InstituteStatusRejected, false},
		{"approved cannot re-approve", InstituteStatusApproved, InstituteStatusApproved, false},
		{"rejected is terminal", InstituteStatusRejected, InstituteStatusApproved, false},
		{"rejected cannot re-reject", InstituteStatusRejected, InstituteStatusRejected, false},
		{"unknown status", InstituteStatus("bogus"), InstituteStatusApproved, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.want {
				t.Errorf("CanTransition(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestInstituteStatusValid(t *testing.T) {
	valid := []InstituteStatus{InstituteStatusPending, InstituteStatusApproved, InstituteStatusRejected}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []InstituteStatus{"", "PENDING", "deleted", "Approved"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
