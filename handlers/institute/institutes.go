package institute

import (
	"encoding/json"
	"strconv"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/Amman-Akbar/GlobalApply/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InstituteHandler handles institute-related requests
type InstituteHandler struct {
	db               *gorm.DB
	instituteService *services.InstituteService
	listingService   *services.ListingService
	validator        *validation.Validator
}

// NewInstituteHandler creates a new institute handler
func NewInstituteHandler(db *gorm.DB, instituteService *services.InstituteService, listingService *services.ListingService) *InstituteHandler {
	return &InstituteHandler{
		db:               db,
		instituteService: instituteService,
		listingService:   listingService,
		validator:        validation.NewValidator(),
	}
}

// UpdateInstituteRequest represents the request body for updating an institute
type UpdateInstituteRequest struct {
	Name               string   `json:"name" validate:"omitempty,min=3,max=255"`
	Contact            string   `json:"contact" validate:"omitempty,max=50"`
	Location           string   `json:"location" validate:"omitempty,max=255"`
	Website            string   `json:"website" validate:"omitempty,url,max=255"`
	RegistrationNumber string   `json:"registration_number" validate:"omitempty,max=100"`
	Description        string   `json:"description" validate:"omitempty,max=5000"`
	Logo               string   `json:"logo" validate:"omitempty,url,max=512"`
	Image              string   `json:"image" validate:"omitempty,url,max=512"`
	FeeRange           string   `json:"fee_range" validate:"omitempty,max=100"`
	Featured           *bool    `json:"featured" validate:"omitempty"`
	Facilities         []string `json:"facilities" validate:"omitempty,dive,max=100"`
}

// isOwnerOrAdmin reports whether the authenticated user may manage the institute.
func isOwnerOrAdmin(c *fiber.Ctx, institute *model.Institute) bool {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return false
	}
	return user.Role == model.RoleAdmin || institute.UserID == user.ID
}

// pageParams parses page/limit query values, flooring unparsable or
// out-of-range input so the offset math never goes negative.
func pageParams(pageStr, limitStr string) (page, limit int) {
	page, _ = strconv.Atoi(pageStr)
	limit, _ = strconv.Atoi(limitStr)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// ListInstitutes handles GET /api/v1/institute (admin only, optional status filter)
func (h *InstituteHandler) ListInstitutes(c *fiber.Ctx) error {
	page, limit := pageParams(c.Query("page", "1"), c.Query("limit", "10"))
	status := c.Query("status", "")
	search := c.Query("search", "")

	query := h.db.Model(&model.Institute{})

	if status != "" {
		if !model.InstituteStatus(status).Valid() {
			return response.BadRequest(c, "Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR location ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count institutes")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var institutes []model.Institute
	if err := query.Preload("Subscription").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&institutes).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch institutes")
	}

	return response.Paginated(c, institutes, pagination)
}

// GetInstitute handles GET /api/v1/institute/:id
// Pending/rejected institutes are visible only to their owner and admins.
func (h *InstituteHandler) GetInstitute(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid institute id")
	}

	institute, err := h.instituteService.Get(c.Context(), uint(id))
	if err != nil {
		if err == services.ErrInstituteNotFound {
			return response.NotFound(c, "Institute not found")
		}
		return response.InternalServerError(c, "Failed to fetch institute")
	}

	if institute.Status != model.InstituteStatusApproved && !isOwnerOrAdmin(c, institute) {
		return response.NotFound(c, "Institute not found")
	}

	return response.Success(c, institute)
}

// UpdateInstitute handles PUT /api/v1/institute/:id (owner or admin)
func (h *InstituteHandler) UpdateInstitute(c *fiber.Ctx) error {
	id := c.Params("id")

	var institute model.Institute
	if err := h.db.First(&institute, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Institute not found")
		}
		return response.InternalServerError(c, "Failed to fetch institute")
	}

	if !isOwnerOrAdmin(c, &institute) {
		return response.Forbidden(c, "Only the institute owner or an administrator can update this institute")
	}

	var req UpdateInstituteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Name != "" {
		institute.Name = validation.SanitizeString(req.Name)
	}
	if req.Contact != "" {
		institute.Contact = validation.SanitizeString(req.Contact)
	}
	if req.Location != "" {
		institute.Location = validation.SanitizeString(req.Location)
	}
	if req.Website != "" {
		institute.Website = validation.SanitizeString(req.Website)
	}
	if req.RegistrationNumber != "" {
		institute.RegistrationNumber = validation.SanitizeString(req.RegistrationNumber)
	}
	if req.Description != "" {
		institute.Description = validation.SanitizeString(req.Description)
	}
	if req.Logo != "" {
		institute.Logo = req.Logo
	}
	if req.Image != "" {
		institute.Image = req.Image
	}
	if req.FeeRange != "" {
		institute.FeeRange = validation.SanitizeString(req.FeeRange)
	}
	if req.Featured != nil {
		// Only admins may control featured placement
		user, _ := middleware.GetUser(c)
		if user == nil || user.Role != model.RoleAdmin {
			return response.Forbidden(c, "Only administrators can change featured placement")
		}
		institute.Featured = *req.Featured
	}
	if req.Facilities != nil {
		facilities, err := json.Marshal(req.Facilities)
		if err != nil {
			return response.BadRequest(c, "Invalid facilities list")
		}
		institute.Facilities = datatypes.JSON(facilities)
	}

	if err := h.db.Save(&institute).Error; err != nil {
		return response.InternalServerError(c, "Failed to update institute")
	}

	// Content changes must not serve stale public listings
	h.listingService.Invalidate(c.Context())

	return response.SuccessWithMessage(c, "Institute updated successfully", institute)
}

// DeleteInstitute handles DELETE /api/v1/institute/:id (owner or admin).
// Departments and programs cascade; wishlist entries are left dangling and
// resolve to null details on read.
func (h *InstituteHandler) DeleteInstitute(c *fiber.Ctx) error {
	id := c.Params("id")

	var institute model.Institute
	if err := h.db.First(&institute, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Institute not found")
		}
		return response.InternalServerError(c, "Failed to fetch institute")
	}

	if !isOwnerOrAdmin(c, &institute) {
		return response.Forbidden(c, "Only the institute owner or an administrator can delete this institute")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id IN (SELECT id FROM departments WHERE institute_id = ?)", institute.ID).
			Delete(&model.Program{}).Error; err != nil {
			return err
		}
		if err := tx.Where("institute_id = ?", institute.ID).Delete(&model.Department{}).Error; err != nil {
			return err
		}
		return tx.Delete(&institute).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete institute")
	}

	h.listingService.Invalidate(c.Context())

	return response.SuccessWithMessage(c, "Institute deleted successfully", nil)
}
