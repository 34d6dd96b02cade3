package institute

import (
	"strconv"

	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/gofiber/fiber/v2"
)

// Approve handles PUT /api/v1/institute/:id/approve (admin only).
// Only a pending institute can be approved; the transition has no effect on
// the institute's subscription status.
func (h *InstituteHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid institute id")
	}

	institute, err := h.instituteService.Approve(c.Context(), uint(id))
	if err != nil {
		switch err {
		case services.ErrInstituteNotFound:
			return response.NotFound(c, "Institute not found")
		case services.ErrInvalidTransition:
			return response.Conflict(c, "Institute is not pending review")
		}
		return response.InternalServerError(c, "Failed to approve institute")
	}

	return response.SuccessWithMessage(c, "Institute approved", institute)
}

// Reject handles PUT /api/v1/institute/:id/reject (admin only).
func (h *InstituteHandler) Reject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid institute id")
	}

	institute, err := h.instituteService.Reject(c.Context(), uint(id))
	if err != nil {
		switch err {
		case services.ErrInstituteNotFound:
			return response.NotFound(c, "Institute not found")
		case services.ErrInvalidTransition:
			return response.Conflict(c, "Institute is not pending review")
		}
		return response.InternalServerError(c, "Failed to reject institute")
	}

	return response.SuccessWithMessage(c, "Institute rejected", institute)
}
