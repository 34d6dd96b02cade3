package auth

import (
	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/Amman-Akbar/GlobalApply/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Image    string `json:"image" validate:"omitempty,url,max=512"`
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	return response.Success(c, toUserResponse(user))
}

// UpdateProfile updates the authenticated user's profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Username != "" {
		username := validation.SanitizeString(req.Username)
		if ok, msg := validation.ValidateUsername(username); !ok {
			return response.BadRequest(c, msg)
		}

		// Username must stay unique
		var count int64
		h.db.Model(&model.User{}).Where("username = ? AND id != ?", username, user.ID).Count(&count)
		if count > 0 {
			return response.Conflict(c, "Username already taken")
		}
		user.Username = username
	}
	if req.Image != "" {
		user.Image = validation.SanitizeString(req.Image)
	}

	if err := h.db.Save(user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated successfully", toUserResponse(user))
}
