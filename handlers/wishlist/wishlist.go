package wishlist

import (
	"errors"
	"strconv"

	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/Amman-Akbar/GlobalApply/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WishlistHandler handles student wishlist membership
type WishlistHandler struct {
	wishlistService *services.WishlistService
	validator       *validation.Validator
}

func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: services.NewWishlistService(db),
		validator:       validation.NewValidator(),
	}
}

// EntryRequest identifies the institute/program pair a wishlist
// operation acts on. The user is taken from the access token.
type EntryRequest struct {
	InstituteID uint `json:"institute_id" validate:"required"`
	ProgramID   uint `json:"program_id" validate:"required"`
}

func (h *WishlistHandler) parseEntry(c *fiber.Ctx) (*EntryRequest, error) {
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, response.ValidationError(c, err)
	}
	return &req, nil
}

// Add handles POST /api/v1/wishlist/add
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	req, err := h.parseEntry(c)
	if err != nil {
		return err
	}

	entry, err := h.wishlistService.Add(c.Context(), userID, req.InstituteID, req.ProgramID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateWishlistEntry):
			return response.Conflict(c, "Program is already in your wishlist")
		case errors.Is(err, services.ErrInstituteNotFound):
			return response.NotFound(c, "Institute not found")
		case errors.Is(err, services.ErrProgramNotFound):
			return response.NotFound(c, "Program not found")
		default:
			return response.InternalServerError(c, "Failed to add to wishlist")
		}
	}

	return response.Created(c, entry)
}

// Remove handles DELETE /api/v1/wishlist/remove
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	req, err := h.parseEntry(c)
	if err != nil {
		return err
	}

	if err := h.wishlistService.Remove(c.Context(), userID, req.InstituteID, req.ProgramID); err != nil {
		if errors.Is(err, services.ErrWishlistEntryNotFound) {
			return response.NotFound(c, "Wishlist entry not found")
		}
		return response.InternalServerError(c, "Failed to remove from wishlist")
	}

	return response.SuccessWithMessage(c, "Removed from wishlist", nil)
}

// Check handles GET /api/v1/wishlist/check?institute_id=&program_id=
func (h *WishlistHandler) Check(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	instituteID, err := strconv.ParseUint(c.Query("institute_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid institute_id")
	}

	programID, err := strconv.ParseUint(c.Query("program_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid program_id")
	}

	inWishlist, err := h.wishlistService.Check(c.Context(), userID, uint(instituteID), uint(programID))
	if err != nil {
		return response.InternalServerError(c, "Failed to check wishlist")
	}

	return response.Success(c, fiber.Map{"isInWishlist": inWishlist})
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	items, err := h.wishlistService.List(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch wishlist")
	}

	return response.Success(c, items)
}
