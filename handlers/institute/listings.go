package institute

import (
	"strconv"

	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/gofiber/fiber/v2"
)

func listingLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}

// Featured handles GET /api/v1/institute/featured (public)
func (h *InstituteHandler) Featured(c *fiber.Ctx) error {
	institutes, err := h.listingService.Featured(c.Context(), listingLimit(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch featured institutes")
	}
	return response.Success(c, institutes)
}

// Trending handles GET /api/v1/institute/trending (public)
func (h *InstituteHandler) Trending(c *fiber.Ctx) error {
	institutes, err := h.listingService.Trending(c.Context(), listingLimit(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch trending institutes")
	}
	return response.Success(c, institutes)
}

// Latest handles GET /api/v1/institute/latest (public)
func (h *InstituteHandler) Latest(c *fiber.Ctx) error {
	institutes, err := h.listingService.Latest(c.Context(), listingLimit(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch latest institutes")
	}
	return response.Success(c, institutes)
}

// ActivePrograms handles GET /api/v1/programs/active (public).
// Active programs of approved institutes, grouped by department name.
func (h *InstituteHandler) ActivePrograms(c *fiber.Ctx) error {
	groups, err := h.listingService.ActivePrograms(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch active programs")
	}
	return response.Success(c, groups)
}
