package admin

import (
	"strconv"
	"strings"

	"github.com/Amman-Akbar/GlobalApply/database"
	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/utils/auth"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListUsersRequest represents the query parameters for listing users
type ListUsersRequest struct {
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
	Role    string `query:"role"`
	Search  string `query:"search"`
	Sort    string `query:"sort"`
	SortDir string `query:"sort_dir"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ResetPasswordRequest represents the request for admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// sortableUserColumns are the only columns ORDER BY accepts. Sort input goes
// into the SQL string, so anything outside this set falls back to created_at.
var sortableUserColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"username":   true,
	"email":      true,
	"role":       true,
}

// userOrderBy builds the ORDER BY clause for the user listing from
// whitelisted values only.
func userOrderBy(sort, dir string) string {
	if !sortableUserColumns[sort] {
		sort = "created_at"
	}
	if dir != "asc" && dir != "desc" {
		dir = "desc"
	}
	return sort + " " + dir
}

// ListUsers retrieves all users with pagination and filters
// GET /admin/users
func ListUsers(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var req ListUsersRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := db.Model(&model.User{})

	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count users")
	}

	var users []model.User
	offset := (req.Page - 1) * req.Limit

	if err := query.Offset(offset).Limit(req.Limit).Order(userOrderBy(req.Sort, req.SortDir)).Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return response.Paginated(c, users, response.CalculatePagination(req.Page, req.Limit, total))
}

// GetUser retrieves a specific user by ID
// GET /admin/users/:id
func GetUser(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := db.Preload("Institute").First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	var stats struct {
		WishlistEntries int64 `json:"wishlist_entries"`
	}
	db.Model(&model.WishlistEntry{}).Where("user_id = ?", userID).Count(&stats.WishlistEntries)

	user.PasswordHash = ""

	return response.SuccessWithMessage(c, "User retrieved successfully", fiber.Map{
		"user":  user,
		"stats": stats,
	})
}

// UpdateUser updates a user's information
// PUT /admin/users/:id
func UpdateUser(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	updates := make(map[string]interface{})

	if req.Username != "" {
		var existingUser model.User
		if err := db.Where("username = ? AND id != ?", req.Username, userID).First(&existingUser).Error; err == nil {
			return response.BadRequest(c, "Username already in use")
		}
		updates["username"] = req.Username
	}
	if req.Email != "" {
		var existingUser model.User
		if err := db.Where("email = ? AND id != ?", req.Email, userID).First(&existingUser).Error; err == nil {
			return response.BadRequest(c, "Email already in use")
		}
		updates["email"] = req.Email
	}
	if req.Role == model.RoleStudent || req.Role == model.RoleInstitute || req.Role == model.RoleAdmin {
		updates["role"] = req.Role
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	db.First(&user, userID)
	user.PasswordHash = ""

	return response.SuccessWithMessage(c, "User updated successfully", fiber.Map{
		"user": user,
	})
}

// DeleteUser soft deletes a user
// DELETE /admin/users/:id
func DeleteUser(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if adminID, ok := middleware.GetUserID(c); ok && adminID == uint(userID) {
		return response.BadRequest(c, "Cannot delete your own account")
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if err := db.Delete(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted successfully", fiber.Map{
		"user_id": userID,
	})
}

// ResetUserPassword allows admin to reset a user's password
// POST /admin/users/:id/reset-password
func ResetUserPassword(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.NewPassword) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to hash password")
	}

	// Revoking all tokens bumps token_version, invalidating every
	// outstanding session in the same transaction as the new hash.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password_hash", hashedPassword).Error; err != nil {
			return err
		}
		return auth.NewBlacklistService(tx).RevokeAllUserTokens(c.Context(), user.ID)
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.SuccessWithMessage(c, "Password reset successfully", fiber.Map{
		"user_id": userID,
		"message": "All user sessions have been invalidated",
	})
}

// GetPlatformStats retrieves overall platform statistics
// GET /admin/stats
func GetPlatformStats(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var stats struct {
		TotalUsers         int64 `json:"total_users"`
		StudentUsers       int64 `json:"student_users"`
		InstituteUsers     int64 `json:"institute_users"`
		PendingInstitutes  int64 `json:"pending_institutes"`
		ApprovedInstitutes int64 `json:"approved_institutes"`
		RejectedInstitutes int64 `json:"rejected_institutes"`
		ActiveSubscribers  int64 `json:"active_subscribers"`
		WishlistEntries    int64 `json:"wishlist_entries"`
	}

	db.Model(&model.User{}).Count(&stats.TotalUsers)
	db.Model(&model.User{}).Where("role = ?", model.RoleStudent).Count(&stats.StudentUsers)
	db.Model(&model.User{}).Where("role = ?", model.RoleInstitute).Count(&stats.InstituteUsers)

	db.Model(&model.Institute{}).Where("status = ?", model.InstituteStatusPending).Count(&stats.PendingInstitutes)
	db.Model(&model.Institute{}).Where("status = ?", model.InstituteStatusApproved).Count(&stats.ApprovedInstitutes)
	db.Model(&model.Institute{}).Where("status = ?", model.InstituteStatusRejected).Count(&stats.RejectedInstitutes)

	db.Model(&model.Institute{}).Where("subscription_status = ?", model.SubscriptionStatusActive).Count(&stats.ActiveSubscribers)
	db.Model(&model.WishlistEntry{}).Count(&stats.WishlistEntries)

	return response.SuccessWithMessage(c, "Platform statistics retrieved successfully", stats)
}
