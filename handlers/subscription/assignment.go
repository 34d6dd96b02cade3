package subscription

import (
	"errors"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AssignmentRequest identifies the institute/plan pair an assignment
// operation acts on.
type AssignmentRequest struct {
	SubscriptionID uint `json:"subscription_id" validate:"required"`
	InstituteID    uint `json:"institute_id" validate:"required"`
}

func (h *SubscriptionHandler) parseAssignment(c *fiber.Ctx) (*AssignmentRequest, error) {
	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, response.ValidationError(c, err)
	}
	return &req, nil
}

// canManageInstitute reports whether the caller owns the institute or is an admin.
func (h *SubscriptionHandler) canManageInstitute(c *fiber.Ctx, instituteID uint) (bool, error) {
	role, _ := middleware.GetUserRole(c)
	if role == model.RoleAdmin {
		return true, nil
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return false, nil
	}

	var institute model.Institute
	if err := h.db.Select("user_id").First(&institute, instituteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, services.ErrInstituteNotFound
		}
		return false, err
	}

	return institute.UserID == userID, nil
}

func assignmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInstituteNotFound):
		return response.NotFound(c, "Institute not found")
	case errors.Is(err, services.ErrPlanNotFound):
		return response.NotFound(c, "Subscription plan not found")
	case errors.Is(err, services.ErrPlanUnavailable):
		return response.BadRequest(c, "Subscription plan is not available")
	case errors.Is(err, services.ErrNoPendingSubscription):
		return response.Conflict(c, "Institute has no pending request for this plan")
	case errors.Is(err, services.ErrNotSubscribed):
		return response.Conflict(c, "Institute is not assigned to this plan")
	case errors.Is(err, services.ErrInvalidTransition):
		return response.Conflict(c, "Subscription is not in a state that allows this operation")
	default:
		return response.InternalServerError(c, "Failed to update subscription")
	}
}

// Assign handles POST /api/v1/subscriptions/assign (institute owner or admin).
// The assignment is recorded as pending until an admin approves it.
func (h *SubscriptionHandler) Assign(c *fiber.Ctx) error {
	req, err := h.parseAssignment(c)
	if err != nil {
		return err
	}

	allowed, err := h.canManageInstitute(c, req.InstituteID)
	if err != nil {
		return assignmentError(c, err)
	}
	if !allowed {
		return response.Forbidden(c, "Only the institute owner or an administrator can request subscriptions")
	}

	institute, err := h.subscriptionService.Assign(c.Context(), req.InstituteID, req.SubscriptionID)
	if err != nil {
		return assignmentError(c, err)
	}

	return response.SuccessWithMessage(c, "Subscription requested, awaiting approval", institute)
}

// Approve handles POST /api/v1/subscriptions/approve (admin only)
func (h *SubscriptionHandler) Approve(c *fiber.Ctx) error {
	req, err := h.parseAssignment(c)
	if err != nil {
		return err
	}

	institute, err := h.subscriptionService.Approve(c.Context(), req.InstituteID, req.SubscriptionID)
	if err != nil {
		return assignmentError(c, err)
	}

	return response.SuccessWithMessage(c, "Subscription approved", institute)
}

// Reject handles POST /api/v1/subscriptions/reject (admin only)
func (h *SubscriptionHandler) Reject(c *fiber.Ctx) error {
	req, err := h.parseAssignment(c)
	if err != nil {
		return err
	}

	institute, err := h.subscriptionService.Reject(c.Context(), req.InstituteID, req.SubscriptionID)
	if err != nil {
		return assignmentError(c, err)
	}

	return response.SuccessWithMessage(c, "Subscription rejected", institute)
}

// Remove handles POST /api/v1/subscriptions/remove (institute owner or admin)
func (h *SubscriptionHandler) Remove(c *fiber.Ctx) error {
	req, err := h.parseAssignment(c)
	if err != nil {
		return err
	}

	allowed, err := h.canManageInstitute(c, req.InstituteID)
	if err != nil {
		return assignmentError(c, err)
	}
	if !allowed {
		return response.Forbidden(c, "Only the institute owner or an administrator can remove subscriptions")
	}

	institute, err := h.subscriptionService.Remove(c.Context(), req.InstituteID, req.SubscriptionID)
	if err != nil {
		return assignmentError(c, err)
	}

	return response.SuccessWithMessage(c, "Subscription removed", institute)
}
