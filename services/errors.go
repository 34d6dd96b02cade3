package services

import "errors"

// Domain errors surfaced by services. Handlers map these onto the HTTP error
// taxonomy (NotFound, Conflict, BadRequest); anything else is a server error.
var (
	ErrInstituteNotFound = errors.New("institute not found")
	ErrPlanNotFound      = errors.New("subscription plan not found")
	ErrProgramNotFound   = errors.New("program not found")

	// ErrInvalidTransition is returned when an approval or subscription
	// status change is not permitted from the current state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotSubscribed is returned when an institute's current subscription
	// does not match the plan named in the request.
	ErrNotSubscribed = errors.New("institute not subscribed to this plan")

	// ErrNoPendingSubscription is returned by approve/reject when the
	// institute has no pending request for the named plan.
	ErrNoPendingSubscription = errors.New("no pending subscription request for this plan")

	// ErrPlanUnavailable is returned when assigning an inactive plan.
	ErrPlanUnavailable = errors.New("subscription plan is not available")

	// ErrPlanInUse blocks plan deletion while institutes still reference it.
	ErrPlanInUse = errors.New("subscription plan is referenced by institutes")

	ErrDuplicateWishlistEntry = errors.New("program already in wishlist")
	ErrWishlistEntryNotFound  = errors.New("wishlist entry not found")
)
